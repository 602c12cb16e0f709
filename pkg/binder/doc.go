// Package binder fills request structs from path parameters, form posts and
// datastar signals.
//
// Each binder returns a func(r *http.Request, v any) error that handler.Wrap
// runs in order. A binder that does not apply to the request (a plain form
// post seen by Signals, a signals request seen by Form) returns an error
// matching ErrBinderNotApplicable and is skipped.
//
// Struct tags:
//
//	type FieldEventRequest struct {
//		Form   string            `path:"form"`
//		Field  string            `path:"field"`
//		Values map[string]string `signals:"*"`
//	}
//
//	type SubmitRequest struct {
//		Form   string                           `path:"form"`
//		Values url.Values                       `form:"*"`
//		Files  map[string]*multipart.FileHeader `file:"*"`
//	}
//
// The "*" name binds every value of the source at once, which suits forms
// whose fields are only known at runtime. Named tags bind single values with
// the usual scalar conversions.
package binder
