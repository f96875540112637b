// Package cli provides CLI commands for the milestone application.
package cli

import (
	gocontext "context"

	"github.com/example/milestone/internal/ctxutil"
	"github.com/example/milestone/internal/wire"
)

// NewContext creates a context.Background() with the configured user embedded.
// CLI commands should use this instead of context.Background() directly.
func NewContext() gocontext.Context {
	return ctxutil.WithUserID(gocontext.Background(), wire.Config().UserID)
}
