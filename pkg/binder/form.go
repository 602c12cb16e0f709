package binder

import (
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"reflect"
	"strings"
)

// DefaultMaxMemory is the maximum memory used for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20

// Form binds application/x-www-form-urlencoded and multipart/form-data posts.
//
// Supported struct tags:
//   - `form:"name"` - binds form field "name"
//   - `form:"*"`    - binds every form field into a url.Values or map[string]string
//   - `file:"name"` - binds uploaded file "name" (*multipart.FileHeader or a slice of them)
//   - `file:"*"`    - binds the first upload of every file field into a map[string]*multipart.FileHeader
//
// Requests with any other content type are not applicable.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		mediaType, params, err := mime.ParseMediaType(contentType)
		if contentType == "" || err != nil {
			return fmt.Errorf("%w: %w: %q", ErrBinderNotApplicable, ErrUnsupportedMediaType, contentType)
		}

		var values map[string][]string
		var files map[string][]*multipart.FileHeader

		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.PostForm

		case "multipart/form-data":
			if !validateBoundary(params["boundary"]) {
				return fmt.Errorf("%w: invalid boundary parameter", ErrInvalidForm)
			}
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.MultipartForm.Value
			files = r.MultipartForm.File

		default:
			return fmt.Errorf("%w: %w: %s", ErrBinderNotApplicable, ErrUnsupportedMediaType, mediaType)
		}

		if err := bindToStruct(v, "form", values, ErrInvalidForm); err != nil {
			return err
		}
		return bindFiles(v, files)
	}
}

var fileHeaderType = reflect.TypeOf((*multipart.FileHeader)(nil))

// bindFiles binds uploaded files to the struct fields carrying a file tag.
func bindFiles(v any, files map[string][]*multipart.FileHeader) error {
	rv, err := targetStruct(v, ErrInvalidForm)
	if err != nil {
		return err
	}
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		fieldType := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		name, skip := parseFieldTag(fieldType, "file")
		if skip {
			continue
		}

		if name == wildcard {
			if err := setFileMap(field, fieldType.Type, files); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrInvalidForm, fieldType.Name, err)
			}
			continue
		}

		headers := files[name]
		if len(headers) == 0 {
			continue
		}
		if err := setFileField(field, fieldType.Type, headers); err != nil {
			return fmt.Errorf("%w: field %s: %v", ErrInvalidForm, fieldType.Name, err)
		}
	}
	return nil
}

func setFileMap(field reflect.Value, fieldType reflect.Type, files map[string][]*multipart.FileHeader) error {
	if fieldType.Kind() != reflect.Map || fieldType.Key().Kind() != reflect.String || fieldType.Elem() != fileHeaderType {
		return fmt.Errorf("unsupported type for file wildcard: %v (expected map[string]*multipart.FileHeader)", fieldType)
	}
	out := reflect.MakeMapWithSize(fieldType, len(files))
	for name, headers := range files {
		if len(headers) == 0 {
			continue
		}
		headers[0].Filename = sanitizeFilename(headers[0].Filename)
		out.SetMapIndex(reflect.ValueOf(name), reflect.ValueOf(headers[0]))
	}
	field.Set(out)
	return nil
}

// setFileField sets file values to struct fields.
func setFileField(field reflect.Value, fieldType reflect.Type, fileHeaders []*multipart.FileHeader) error {
	for _, fh := range fileHeaders {
		fh.Filename = sanitizeFilename(fh.Filename)
	}

	if fieldType.Kind() == reflect.Slice {
		if fieldType.Elem() != fileHeaderType {
			return fmt.Errorf("unsupported slice element type for file field: %v", fieldType.Elem())
		}
		slice := reflect.MakeSlice(fieldType, len(fileHeaders), len(fileHeaders))
		for i, fh := range fileHeaders {
			slice.Index(i).Set(reflect.ValueOf(fh))
		}
		field.Set(slice)
		return nil
	}

	if fieldType == fileHeaderType {
		field.Set(reflect.ValueOf(fileHeaders[0]))
		return nil
	}

	return fmt.Errorf("unsupported type for file field: %v (expected *multipart.FileHeader or []*multipart.FileHeader)", fieldType)
}

// sanitizeFilename strips directory components and null bytes so a client
// supplied name is safe to display.
func sanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}
	return filename
}

// validateBoundary checks the multipart boundary against RFC 2046:
// 1 to 70 characters from the allowed set.
func validateBoundary(boundary string) bool {
	if len(boundary) == 0 || len(boundary) > 70 {
		return false
	}
	for _, c := range boundary {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune("'()+_,-./:=? ", c):
		default:
			return false
		}
	}
	return !strings.HasSuffix(boundary, " ")
}
