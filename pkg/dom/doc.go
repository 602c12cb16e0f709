// Package dom is a minimal in-memory element tree standing in for a page's
// DOM on the server.
//
// A Document owns Elements addressed by id. Elements carry what form
// interactivity reads and writes: a class list, text content, a hidden flag,
// inline styles, attributes and form control state (value, checked, options).
//
// Every mutation is recorded in the document's change journal. Flush returns
// the top-most changed elements that have an id, so a transport can send one
// patch per changed subtree instead of re-rendering the page.
//
// A Document is not safe for concurrent use. It models a single page owned by
// one event loop.
package dom
