package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{}.Validate())
	assert.NoError(t, Config{DataDir: "/tmp/data", DBFile: "custom.db"}.Validate())
	assert.ErrorIs(t, Config{DBFile: "../escape.db"}.Validate(), ErrDBFileInvalid)
	assert.ErrorIs(t, Config{DBFile: `dir\file.db`}.Validate(), ErrDBFileInvalid)
}
