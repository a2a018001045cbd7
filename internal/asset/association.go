// Package asset holds the pieces shared by every mod asset descriptor: the
// file association capability, the error taxonomy, and path and file helpers.
package asset

// ChangeHook is invoked synchronously after an Association's file changes.
// prev is the path before the change; the new path is already visible through
// the Association when the hook runs.
type ChangeHook func(prev string)

// Association links a descriptor to zero or one backing file. The empty path
// means "no associated file". Descriptors embed an Association and install a
// hook with OnChange when they have fields derived from the file location.
//
// Association does not own the file's contents; it is only a reference.
type Association struct {
	file  string
	onSet ChangeHook
}

// NewAssociation returns an Association referencing file, which may be empty.
func NewAssociation(file string) Association {
	return Association{file: file}
}

// File returns the associated path, or "" when there is none.
func (a *Association) File() string {
	return a.file
}

// HasFile reports whether a file is associated.
func (a *Association) HasFile() bool {
	return a.file != ""
}

// SetFile unconditionally replaces the association and then runs the change
// hook, if any, before returning.
//
// Postcondition: File() == file.
func (a *Association) SetFile(file string) {
	prev := a.file
	a.file = file
	if a.onSet != nil {
		a.onSet(prev)
	}
}

// OnChange installs fn as the change hook, replacing any previous hook.
// A nil fn removes the hook.
func (a *Association) OnChange(fn ChangeHook) {
	a.onSet = fn
}
