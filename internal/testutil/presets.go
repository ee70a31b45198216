package testutil

import (
	"fmt"
	"time"
)

// BaseTime is the default timestamp of seeded entries. Millisecond precision
// so it survives a round trip through the sqlite store.
var BaseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// RecentFilePath returns the path WithRecentFiles uses for entry i.
func RecentFilePath(i int) string {
	return fmt.Sprintf("/project/file-%02d.txt", i)
}

// WithRecentFiles adds n entries an hour apart, the last one newest. Entry i
// remembers the cursor at line i, character i*2.
func (b *Builder) WithRecentFiles(n int) *Builder {
	for i := range n {
		b.WithEntry(RecentFilePath(i),
			Position(i, i*2),
			Session(fmt.Sprintf("session-%d", i)),
			UpdatedAt(BaseTime.Add(time.Duration(i)*time.Hour)))
	}
	return b
}
