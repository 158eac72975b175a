// Package ir provides the value types shared by every allstar package.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal.
//
// Key design constraints:
//   - An export list is either *Mutable or Frozen, never anything else
//   - Frozen never exposes its backing slice
//   - Logical clocks (seq) only, never wall-clock timestamps
//   - All JSON tags use snake_case
package ir
