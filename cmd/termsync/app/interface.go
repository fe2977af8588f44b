package app

import (
	appcontext "github.com/agentstation/termsync/cmd/termsync/context"
)

// Ensure App implements the command context at compile time.
var _ appcontext.Context = (*App)(nil)
