package tr

import (
	"context"
	"testing"

	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/stretchr/testify/assert"
)

func TestTxFromCtxMissing(t *testing.T) {
	_, err := TxFromCtx(context.Background())
	assert.ErrorIs(t, err, e.ErrTransactionNotFound)
}

func TestTxFromCtxWrongType(t *testing.T) {
	ctx := WithTx(context.Background(), "not a transaction")

	_, err := TxFromCtx(ctx)
	assert.ErrorIs(t, err, e.ErrTransactionNotFound)
}
