// Package cli provides the terminal user interface components for Pokedex.
//
// The package uses [Bubbletea] for building interactive terminal UIs and
// [Lipgloss] for styling. All UI components follow the standard Bubbletea
// Model-View-Update (MVU) architecture.
//
// # Components
//
//   - Browser: list of stored pokemon with search, favorites-only view and
//     favorite toggling. Every mutation re-reads a fresh catalog snapshot.
//   - Sync: progress display for fetch and sprite passes
//   - Detail: styled rendering of a single record
//
// # Styling
//
// Common styles are defined as package-level variables in styles.go.
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
