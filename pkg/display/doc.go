// Package display renders a read-only summary of the values entered into a
// form. Fields are listed in hierarchy order; fields hidden by their
// condition, and fields whose controlling field no longer exists, are left
// out together with their children. The summary is produced by pongo2
// templates in plain text or HTML form.
package display
