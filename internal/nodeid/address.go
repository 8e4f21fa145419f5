package nodeid

// String serializes the Address into its canonical form.
func (a Address) String() string {
	if a.Name == "" {
		return ""
	}
	return string(a.Kind) + "." + a.Name
}

// IsZero reports whether the address is unset.
func (a Address) IsZero() bool {
	return a.Kind == "" && a.Name == ""
}
