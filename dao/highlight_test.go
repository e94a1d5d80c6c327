package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// 关联操作的空输入不触库，零值 DAO 即可走通
func TestDetachStatusEmptyInput(t *testing.T) {
	d := &HighlightDAO{}
	assert.NoError(t, d.DetachStatus(context.Background(), nil))
	assert.NoError(t, d.DetachStatus(context.Background(), []uint64{}))
}
