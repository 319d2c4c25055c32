// Package wiki is a read-only client for the MediaWiki category API.
//
// # Overview
//
// wikigraph only needs two questions answered by Wikipedia: does a category
// exist, and which subcategories does it have. [Client.Exists] and
// [Client.Subcategories] answer them through the action API
// (https://www.mediawiki.org/wiki/API:Categorymembers):
//
//	c := wiki.NewClient(wiki.Options{Lang: "en"})
//	if err := c.Exists(ctx, "Life"); err != nil {
//	    return err // wraps ErrNotFound for missing categories
//	}
//	subcats, err := c.Subcategories(ctx, "Life")
//
// # Titles
//
// Titles are passed and returned without the namespace prefix ("Life", not
// "Category:Life"). [NormalizeTitle] turns user input into that form.
// Subcategory lists are sorted and deduplicated so callers get a stable
// order independent of the API.
//
// # Errors
//
// Failures are reported through sentinel errors usable with errors.Is:
//
//   - [ErrNotFound]: the category does not exist, or HTTP 404
//   - [ErrNetwork]: transport failures, timeouts, unexpected HTTP status
//   - [ErrAPI]: the API answered with an error object (see [APIError])
//
// Requests are not retried.
package wiki
