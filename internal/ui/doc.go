// Package ui is the Bubble Tea client for the community board.
//
// Core abstractions:
//   - View: a screen with its own model, update and view (Elm-style)
//   - AppModel: hosts the four tabs (Dashboard, Announcements, Post, Profile)
//     and routes request results back to the view that issued them
//   - KeyHandler: single-key and SPC-leader keybindings
//   - FocusManager: tab order across form fields
//   - ModalStack: login prompt and logout confirmation drawn over the tabs
//
// Views fetch through the API interface inside tea.Cmds. Every result message
// carries the generation it was issued under so that a view drops responses
// overtaken by a refresh.
package ui
