package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestNewMessage(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewMessage(""))
	assert.Nil(t, NewMessage("   "))
	require.NotNil(t, NewMessage("Eid Mubarak"))
	assert.Equal(t, "Eid Mubarak", *NewMessage("Eid Mubarak"))
}

func TestSameMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b *string
		want bool
	}{
		{name: "both absent", a: nil, b: nil, want: true},
		{name: "empty equals absent", a: ptr(""), b: nil, want: true},
		{name: "absent vs text", a: nil, b: ptr("Amina"), want: false},
		{name: "same text", a: ptr("Amina"), b: ptr("Amina"), want: true},
		{name: "case matters", a: ptr("Amina"), b: ptr("amina"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameMessage(tt.a, tt.b))
			assert.Equal(t, tt.want, SameMessage(tt.b, tt.a))
		})
	}
}

func TestMessageKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", MessageKey(nil))
	assert.Equal(t, "", MessageKey(ptr(" ")))
	assert.Equal(t, "Amina", MessageKey(ptr("Amina")))
}

func TestCartItemSameLine(t *testing.T) {
	t.Parallel()

	p := uuid.New()
	item := CartItem{ProductID: p, Message: ptr("Amina")}

	assert.True(t, item.SameLine(p, ptr("Amina")))
	assert.False(t, item.SameLine(p, nil))
	assert.False(t, item.SameLine(uuid.New(), ptr("Amina")))
}

func TestCartItemJSONMessageNull(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(CartItem{ID: uuid.New(), UserSessionID: "s", Quantity: 1})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	v, ok := raw["message"]
	assert.True(t, ok)
	assert.Nil(t, v)
	_, leaked := raw["MessageKey"]
	assert.False(t, leaked)
}

func TestProductMatches(t *testing.T) {
	t.Parallel()

	p := Product{ModelNumber: 12}
	tests := map[string]bool{
		"":             true,
		"  ":           true,
		"12":           true,
		"1":            true,
		"modèle":       true,
		"EXCELLENCE":   true,
		"n°12":         true,
		"n°3":          false,
		"hijab":        false,
		"excellence 1": false,
	}
	for q, want := range tests {
		assert.Equal(t, want, p.Matches(q), q)
	}
}
