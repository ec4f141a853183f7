// Package vault implements the encrypted secret store: key derivation from
// the token response and passcode, the symmetric cipher engine, the JSON
// document on disk, and directory archiving.
//
// Every entry is self-contained. Its salt and IV are generated fresh on
// each (re-)encryption, so rotating one service never touches another.
// Derived keys are ephemeral: they exist for the duration of a single
// Seal or Open call and are never persisted or cached.
package vault
