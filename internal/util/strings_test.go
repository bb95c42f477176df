package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddSpace(t *testing.T) {
	assert.Equal(t, "データ id", AddSpace("データid"))
	assert.Equal(t, "id は必須です", AddSpace("idは必須です"))
	assert.Equal(t, "already spaced", AddSpace("already spaced"))
	assert.Equal(t, "", AddSpace(""))
}
