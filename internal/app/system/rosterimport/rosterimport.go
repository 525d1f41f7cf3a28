// internal/app/system/rosterimport/rosterimport.go
package rosterimport

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dalemusser/mentorhub/internal/app/system/sanitize"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var (
	// ErrUnreadable means the upload is not a workbook excelize can open.
	ErrUnreadable = errors.New("unreadable workbook")
	// ErrNoSheets means the workbook has no worksheets.
	ErrNoSheets = errors.New("workbook has no sheets")
	// ErrTooManyRows means the sheet holds more names than the import limit.
	ErrTooManyRows = errors.New("too many rows")
)

// DefaultMaxRows caps a single import when no limit is configured.
const DefaultMaxRows = 5000

// ParseNames reads student names from column A of the workbook's first
// sheet. A first row whose cell reads "name" (any case) is a header and is
// dropped. Names are sanitized; rows that end up blank are skipped.
func ParseNames(r io.Reader, maxRows int, logger *zap.Logger) ([]string, error) {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("error closing workbook", zap.Error(err))
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", ErrUnreadable, sheet, err)
	}

	names := make([]string, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "name") {
			continue
		}
		name := sanitize.Name(row[0])
		if name == "" {
			continue
		}
		if len(names) == maxRows {
			return nil, fmt.Errorf("%w: limit is %d", ErrTooManyRows, maxRows)
		}
		names = append(names, name)
	}

	logger.Debug("parsed roster workbook",
		zap.String("sheet", sheet),
		zap.Int("rows", len(rows)),
		zap.Int("names", len(names)))
	return names, nil
}
