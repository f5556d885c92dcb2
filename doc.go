// Package sitesearch embeds search over a static site's search.json index
// in Go programs.
//
// The index is a JSON array of documents with title, content, tags, url
// and date. Queries are scored with fixed per-field weights and rendered
// as an HTML fragment with matched terms wrapped in <mark>.
//
//	client, _ := sitesearch.New(sitesearch.WithIndexFile("public/search.json"))
//	_ = client.Load(ctx)
//	hits := client.Search("distributed cache")
//	fragment, _ := client.Render("distributed cache")
//
// # Search as you type
//
// Attach wires an input surface and a results surface to a debounced
// controller. Results appear 300ms after typing pauses.
//
//	ctrl := client.Attach(input, results)
//	ctrl.Start(ctx, location) // location may carry ?q=
//	input.SetValue("cache")
//	ctrl.InputChanged()
package sitesearch
