// Package lexipage provides an AI-powered interactive dictionary engine.
//
// Lexipage resolves words and phrases into definitions and example
// sentences generated by an AI completion API, caching results so each
// phrase is only looked up once. It also merges adjacent word selections
// into contiguous phrases, the unit of resolution.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/LumaLabs/lexipage"
//	    "github.com/LumaLabs/lexipage/cache"
//	    "github.com/LumaLabs/lexipage/source"
//	)
//
//	func main() {
//	    // Create source
//	    src := source.NewOpenAISource(source.OpenAIConfig{
//	        APIKey: os.Getenv("OPENAI_API_KEY"),
//	    })
//
//	    // Create resolver with a persistent file cache
//	    store, _ := cache.OpenFileStore("data/translations.json")
//	    r := lexipage.NewResolver(src, lexipage.WithStore(store))
//
//	    // Resolve a batch of phrases
//	    results := r.Resolve(context.Background(), []string{"cat", "give up"})
//	    for _, res := range results {
//	        fmt.Println(res.Phrase, res.Entry.Definition)
//	    }
//	}
package lexipage
