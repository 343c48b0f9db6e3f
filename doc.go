// Package gmailsdk is a lightweight index for the subpackages in this module.
//
// This root package is documentation-only. Import specific subpackages to use
// concrete helpers.
//
// Available subpackages:
//   - github.com/ldraney/gmail-sdk/gmail
//     Typed client for the Gmail REST API: messages, threads, drafts,
//     labels, filters, settings, history, attachments, the OAuth
//     authorization flow, and high-level operations such as Reply,
//     ReplyAll, Forward and Archive.
//   - github.com/ldraney/gmail-sdk/browser
//     Browser helpers (for example, opening the consent URL).
//
// Discovery workflow:
//   - Run: go doc github.com/ldraney/gmail-sdk
//   - Then drill in with:
//     go doc github.com/ldraney/gmail-sdk/gmail
//     go doc github.com/ldraney/gmail-sdk/browser
package gmailsdk
