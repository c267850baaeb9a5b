// Package jsonschema derives JSON Schema documents from Go types using
// reflection. Tool argument structs describe themselves to the model through
// these schemas.
//
// Field metadata comes from the `jsonschema` struct tag:
//
//	type Args struct {
//	    URL    string `json:"url" jsonschema:"description=Absolute http(s) URL,required"`
//	    Format string `json:"format,omitempty" jsonschema:"enum=text,enum=markdown,default=text"`
//	    Limit  int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=10"`
//	}
//
// Descriptions cannot contain commas. Nested structs are inlined; recursive
// types are cut off with an empty object schema.
package jsonschema
