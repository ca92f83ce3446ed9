package out

import "context"

type JournalStore interface {
	// Read returns "" when the journal does not exist yet.
	Read(ctx context.Context, path string) (string, error)
	Write(ctx context.Context, path, content string) error
}
