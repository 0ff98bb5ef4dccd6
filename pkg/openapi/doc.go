// Package openapi derives form definitions from the request bodies of
// OpenAPI 3 operations. Documents are read from disk, an fs.FS or HTTP and
// parsed with kin-openapi; each operation's JSON body schema becomes a
// schema.Form whose rules mirror the schema constraints.
package openapi
