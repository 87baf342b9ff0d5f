// Package driven declares what the core needs from the outside world.
//
// Gateway is the only port a service cannot run without; it is the BdLens
// REST surface implemented by internal/adapters/driven/api. The rest are
// optional and may be nil:
//
//   - SessionStore keeps the access_token cookie between runs. Without it
//     every run starts logged out.
//   - PDFChecker preflights uploads locally. Without it files go up as they are.
//   - UploadLedger remembers what the inbox watcher already sent. Without it
//     duplicates are only caught within one run.
//
// Nothing here may import an adapter.
package driven
