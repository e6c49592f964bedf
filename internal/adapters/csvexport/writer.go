// Package csvexport serializes assessments into the spreadsheet-friendly
// CSV layout and names the files they are saved under.
package csvexport

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"assessio/internal/domain"
)

const bom = "\uFEFF"

// Header is the first row of every export
var Header = []string{
	"記入日", "利用者名（イニシャル）", "管理番号", "評価実施者名", "評価期間開始", "評価期間終了",
	"カテゴリ", "項目", "スコア", "評価", "メモ",
}

// Rows returns the header followed by one row per export row
func Rows(e domain.Export) [][]string {
	info := e.BasicInfo
	rows := make([][]string, 0, len(e.Rows)+1)
	rows = append(rows, Header)
	for _, r := range e.Rows {
		rows = append(rows, []string{
			info.EntryDate,
			info.ClientName,
			info.ManagementNumber,
			info.EvaluatorName,
			info.PeriodStart,
			info.PeriodEnd,
			r.Category,
			r.ItemName,
			strconv.Itoa(r.Score),
			r.ScoreLabel,
			r.Notes,
		})
	}
	return rows
}

// Write writes e as UTF-8 with a byte order mark. Every field is quoted and
// rows are separated by a bare newline with none after the last row.
func Write(w io.Writer, e domain.Export) error {
	var b strings.Builder
	b.WriteString(bom)
	for i, row := range Rows(e) {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, field := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(field))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Encode returns e as a CSV document
func Encode(e domain.Export) string {
	var buf bytes.Buffer
	_ = Write(&buf, e)
	return buf.String()
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// FileName returns assessment_<client>_<entry date>.csv. A blank client
// becomes "user" and a blank entry date becomes the date of now.
func FileName(info domain.BasicInfo, now time.Time) string {
	name := info.ClientName
	if name == "" {
		name = "user"
	}
	date := info.EntryDate
	if date == "" {
		date = now.UTC().Format(time.DateOnly)
	}
	const unsafe = `\/:*?"<>|`
	return fmt.Sprintf("assessment_%s_%s.csv", replaceUnsafe(name, unsafe), replaceUnsafe(date, unsafe))
}

// ChartFileName returns assessment_<category>_<YYYYMMDD_HHMMSS>.png
func ChartFileName(category string, now time.Time) string {
	return fmt.Sprintf("assessment_%s_%s.png", replaceUnsafe(category, `/\?%*:|"<>`), now.Format("20060102_150405"))
}

func replaceUnsafe(s, unsafe string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(unsafe, r) {
			return '_'
		}
		return r
	}, s)
}

// SaveFile writes e into dir under FileName and returns the path
func SaveFile(dir string, e domain.Export, now time.Time) (string, error) {
	path := filepath.Join(dir, FileName(e.BasicInfo, now))
	if err := os.WriteFile(path, []byte(Encode(e)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
