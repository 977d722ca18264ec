package handler

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "nestify/internal/errors"
)

// maxMultipartMemory is how much of a multipart body is kept in memory;
// the rest spills to temp files removed by form.RemoveAll.
const maxMultipartMemory = 8 << 20

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// readForm parses the multipart body. Callers must defer form.RemoveAll().
func readForm(c echo.Context) (*multipart.Form, error) {
	req := c.Request()
	if err := req.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "invalid multipart body", err)
	}
	return req.MultipartForm, nil
}

// files returns the uploads under name, accepting both "name" and "name[]".
func files(form *multipart.Form, name string) []*multipart.FileHeader {
	out := append([]*multipart.FileHeader(nil), form.File[name]...)
	return append(out, form.File[name+"[]"]...)
}

func file(form *multipart.Form, name string) *multipart.FileHeader {
	if fs := files(form, name); len(fs) > 0 {
		return fs[0]
	}
	return nil
}

// formReader decodes typed text fields from a multipart form. Parse errors
// are collected and reported together by err.
type formReader struct {
	values map[string][]string
	errs   []string
}

func newFormReader(form *multipart.Form) *formReader {
	return &formReader{values: form.Value}
}

func (f *formReader) raw(name string) (string, bool) {
	v, ok := f.values[name]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

func (f *formReader) str(name string) *string {
	v, ok := f.raw(name)
	if !ok {
		return nil
	}
	return &v
}

func (f *formReader) text(name string) string {
	v, _ := f.raw(name)
	return v
}

func (f *formReader) integer(name string) *int {
	v, ok := f.raw(name)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		f.errs = append(f.errs, fmt.Sprintf("%s must be an integer", name))
		return nil
	}
	return &n
}

func (f *formReader) dec(name string) *decimal.Decimal {
	v, ok := f.raw(name)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		f.errs = append(f.errs, fmt.Sprintf("%s must be a number", name))
		return nil
	}
	return &d
}

func (f *formReader) boolean(name string) *bool {
	v, ok := f.raw(name)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		f.errs = append(f.errs, fmt.Sprintf("%s must be true or false", name))
		return nil
	}
	return &b
}

// list reads a string list sent as repeated fields (name or name[]), a JSON
// array, or a comma-separated value. It returns nil when the field is absent.
func (f *formReader) list(name string) []string {
	vals, ok := f.values[name]
	if bracketed, found := f.values[name+"[]"]; found {
		vals, ok = append(append([]string(nil), vals...), bracketed...), true
	}
	if !ok {
		return nil
	}

	out := []string{}
	for _, v := range vals {
		v = strings.TrimSpace(v)
		switch {
		case v == "":
		case strings.HasPrefix(v, "["):
			var arr []string
			if err := json.Unmarshal([]byte(v), &arr); err != nil {
				f.errs = append(f.errs, fmt.Sprintf("%s must be a list of strings", name))
				continue
			}
			out = append(out, arr...)
		default:
			out = append(out, strings.Split(v, ",")...)
		}
	}
	return out
}

func (f *formReader) err() error {
	if len(f.errs) == 0 {
		return nil
	}
	return apperrors.Validation(strings.Join(f.errs, "; "))
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
