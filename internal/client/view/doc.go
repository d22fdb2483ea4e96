// Package view renders the console's tables, modals and form prompts.
package view
