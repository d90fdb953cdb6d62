// Package winsign signs and verifies Windows executables by driving an
// external Authenticode signing tool.
//
// The tool does the cryptography; winsign locates it, builds its command
// lines, runs it, and classifies its output. Targets are signed in place
// with a SHA-256 file digest and an RFC 3161 trusted timestamp, then
// verified against the default Authenticode policy.
//
// # Basic Usage
//
// Create a client and sign a binary:
//
//	client, err := winsign.NewClient()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Sign with a certificate from the local store
//	res, err := client.Sign(ctx, "ToggleService.exe",
//	    winsign.Identity{Subject: "Toggle Software, Inc."},
//	    winsign.Timestamp{URL: "http://timestamp.digicert.com"})
//
//	// Or sign with a PFX file
//	res, err = client.Sign(ctx, "ToggleService.exe",
//	    winsign.Identity{PFXPath: "release.pfx", Password: secret},
//	    winsign.Timestamp{URL: "http://timestamp.digicert.com"})
//
//	// Verify with the default Authenticode policy
//	vres, err := client.Verify(ctx, "ToggleService.exe")
//
// # Tool Discovery
//
// The tool is located through an explicit path (WithSigntool), the
// WINSIGN_SIGNTOOL environment variable, PATH, and on Windows the
// installed Windows Kits roots.
//
// # Failure Classification
//
// The tool's exit status decides success; its output surfaces verbatim.
// Failed invocations return a *ToolError carrying the exit code and
// output, unwrapping to sentinels like ErrNoSignature and ErrBadPassword
// for errors.Is branching.
package winsign
