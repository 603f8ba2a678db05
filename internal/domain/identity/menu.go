package identity

// Menu is an entry of the back-office navigation
type Menu struct {
	MenuCode     int
	MenuName     string
	DisplayOrder int
	Endpoint     string
	ParentCode   *int
}

// IsTopLevel reports whether the menu has no parent
func (m *Menu) IsTopLevel() bool {
	return m.ParentCode == nil
}
