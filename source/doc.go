// Package source provides parameter sources for paramvalidation: lookups of
// raw values by key over query strings, forms, decoded JSON bodies and chi
// route parameters.
//
// Every source returns nil for an absent key:
//
//	src := source.Chain{
//	    source.Map{"id": "42"},
//	    source.Values(r.URL.Query()),
//	}
//	src.Get("id") // "42"
//
// [FromRequest] assembles the usual chain for an *http.Request.
package source
