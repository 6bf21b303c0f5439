// Package gosign provides a typed Go client for the sign.mt sign-language
// translation API.
//
// Gosign wraps the two remote operations (spoken text to sign-language video,
// sign-language image to spoken text) with input validation, typed errors,
// and result caching.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/gosign"
//	    "github.com/ZaguanLabs/gosign/cache"
//	)
//
//	func main() {
//	    // Create client
//	    client, err := gosign.NewClient(gosign.ClientConfig{
//	        APIKey: os.Getenv("SIGN_MT_API_KEY"),
//	    }, gosign.WithCache(cache.NewLRUCache(1024)))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // Translate text into a sign-language video
//	    result, err := client.TextToSign(context.Background(), gosign.TextToSignRequest{
//	        Text:           "Hello, how are you?",
//	        TargetLanguage: "ase",
//	        AvatarStyle:    gosign.StyleRealistic,
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(result.VideoURL) // https://media.sign.mt/...
//	}
package gosign
