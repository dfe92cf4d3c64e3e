// Package naming provides the field-name transforms applied while building
// leaf paths.
//
// Key functions:
//   - Parse: looks up a Convention by its attribute spelling ("camelCase")
//   - Convention.Apply: renames an identifier word by word
//   - Words: acronym-aware identifier tokenizer
//   - Sanitize: strips raw-identifier and keyword escapes
//   - Suggest: did-you-mean lookup used by diagnostics
package naming
