package ledger

import (
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"
)

// Export streams the ledger CSV at path to w, xz-compressed when compress is
// set. Used for archival copies of the history.
func Export(path string, w io.Writer, compress bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	if !compress {
		_, err = io.Copy(w, f)
		return err
	}

	xw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("init xz writer: %w", err)
	}
	if _, err := io.Copy(xw, f); err != nil {
		return fmt.Errorf("compress ledger: %w", err)
	}
	return xw.Close()
}
