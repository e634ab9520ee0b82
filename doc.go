// Package ileterate provides a Go client SDK for the Ileterate grammar
// API, a grammar and style checking service for Dutch and other
// languages.
//
// The SDK supports optional end-to-end encryption of request and
// response bodies using AES-256-GCM with RSA-OAEP key wrapping. The
// server's public key is fetched automatically on first use.
//
// Basic usage:
//
//	client, err := ileterate.New(
//	    ileterate.WithBaseURL("https://api.ileterate.com"),
//	    ileterate.WithAPIKey("your-api-key"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.Check(ctx, "Ik heb de boek gelezen.")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Corrected:", result.CorrectedText)
//
// With encryption:
//
//	client, err := ileterate.New(
//	    ileterate.WithBaseURL("https://api.ileterate.com"),
//	    ileterate.WithAPIKey("your-api-key"),
//	    ileterate.WithEncryption(),
//	)
package ileterate
