package custody

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextLogger(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(bg))

	var buf bytes.Buffer
	logger := log.NewTMLogger(&buf)
	ctx := WithLogger(bg, logger)
	assert.Equal(t, logger, GetLogger(ctx))

	walletCtx := WithLogInfo(ctx, "module", "wallet")
	assert.NotEqual(t, GetLogger(ctx), GetLogger(walletCtx))
	assert.Equal(t, logger, GetLogger(ctx), "parent context must not change")

	GetLogger(walletCtx).Info("proposal created")
	assert.Contains(t, buf.String(), "module=wallet")
	assert.Contains(t, buf.String(), "proposal created")
}
