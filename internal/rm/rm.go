// Package rm permanently deletes stored netlists.
//
// Deletion is by exact (user, filename); there is no trash and no restore.
// Deleting one file never touches another user's file of the same name.
package rm

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/quilter/internal/service"
)

// Result contains the outcome of a delete operation.
type Result struct {
	User    string   `json:"user"`
	Deleted []string `json:"deleted"`
}

// Run deletes each filename in turn and stops at the first failure.
// Files deleted before the failure stay deleted and are listed in the result.
func Run(ctx context.Context, w io.Writer, svc service.Service, user string, filenames []string) (Result, error) {
	result := Result{User: user, Deleted: []string{}}

	for _, f := range filenames {
		if err := svc.Delete(ctx, user, f); err != nil {
			return result, err
		}
		result.Deleted = append(result.Deleted, f)
		fmt.Fprintf(w, "Deleted %s\n", f)
	}
	return result, nil
}
