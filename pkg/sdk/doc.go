// Package shelfdex provides an embedded catalog search client.
//
// The client runs the full search pipeline in-process over an in-memory
// record collection, with no server and no network. It is the programmatic
// equivalent of the HTTP API:
//
//	client, err := shelfdex.New()
//	if err != nil { ... }
//	rec, err := client.AddRecord(ctx, shelfdex.NewRecord{
//		Title: "Street Food Guide",
//		Tags:  []string{"food", "guide"},
//		Date:  time.Date(2023, 5, 20, 0, 0, 0, 0, time.UTC),
//	})
//	page, err := client.Search(ctx, "guide", shelfdex.SearchOptions{})
package shelfdex
