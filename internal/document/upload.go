// upload.go implements the upload flow.
//
// Order matters and matches what web clients expect: undecodable bytes fail
// first, then unparseable JSON (reported, never stored), then the duplicate
// check, and only then validation and persistence. A netlist with
// diagnostics is still stored, flagged invalid.

package document

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/jpl-au/quilter/extension"
	"github.com/jpl-au/quilter/internal/netlist"
	"github.com/jpl-au/quilter/internal/service"
	"github.com/jpl-au/quilter/internal/store"
	"github.com/jpl-au/quilter/internal/validate"
)

// Upload validates content and stores it under (user, filename).
func (s *Service) Upload(ctx context.Context, user, filename string, content []byte) (*service.UploadResult, error) {
	user, filename, err := s.key(user, filename)
	if err != nil {
		return nil, err
	}
	if err := validate.Content(string(content), s.maxContent); err != nil {
		return nil, err
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%s: %w", filename, service.ErrDecode)
	}

	text := string(content)
	res := &service.UploadResult{Filename: filename, Content: text}

	doc, err := netlist.Decode(text)
	if err != nil {
		res.Message = service.MsgInvalidJSON
		res.Errors = []string{"Invalid JSON: " + err.Error()}
		return res, fmt.Errorf("%s: %w", filename, service.ErrInvalidJSON)
	}

	exists, err := s.store.Exists(ctx, user, filename)
	if err != nil {
		return nil, err
	}
	if exists {
		return duplicate(filename), fmt.Errorf("%s: %w", filename, service.ErrDuplicate)
	}

	errs := netlist.ValidateValueWith(doc, s.validation)
	if errs == nil {
		errs = []string{}
	}
	n := &store.Netlist{
		User:     user,
		Filename: filename,
		Content:  text,
		Valid:    len(errs) == 0,
		Errors:   errs,
	}
	opts := store.InsertOptions{MaxName: s.maxName, MaxContent: s.maxContent}
	if err := s.store.Insert(ctx, n, opts); err != nil {
		// Lost a race with a concurrent upload of the same name.
		if errors.Is(err, store.ErrAlreadyExists) {
			return duplicate(filename), fmt.Errorf("%s: %w", filename, service.ErrDuplicate)
		}
		return nil, fmt.Errorf("store %s: %w", filename, err)
	}

	res.Errors = errs
	res.Valid = n.Valid
	res.Stored = true
	res.Message = service.MsgUploadFailed
	if n.Valid {
		res.Message = service.MsgUploadSuccessful
	}

	s.fireEvent(extension.NetlistUploadEvent{
		User:     user,
		Filename: filename,
		Valid:    n.Valid,
		Errors:   errs,
	})
	return res, nil
}

func duplicate(filename string) *service.UploadResult {
	return &service.UploadResult{
		Filename: filename,
		Message:  service.MsgDuplicateFilename,
		Errors: []string{fmt.Sprintf("A file named '%s' already exists for this user. "+
			"Nothing has been saved. Please rename your file or delete the previous version before uploading.", filename)},
	}
}
