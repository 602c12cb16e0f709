// Package qrcode renders QR codes as PNG images.
//
// Generate encodes one payload. Generator adds a fixed size and recovery
// level and memoizes the images it has produced, so a page that shows the
// same payment code on every render encodes it once.
package qrcode
