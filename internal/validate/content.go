// content.go implements uploaded content validation.
//
// Only size is checked here. Structure is the netlist validator's concern and
// invalid netlists are stored deliberately.

package validate

// Content validates uploaded content size. A maxLen of 0 means no limit.
func Content(content string, maxLen int64) error {
	if maxLen > 0 && int64(len(content)) > maxLen {
		return ErrContentTooLarge
	}
	return nil
}
