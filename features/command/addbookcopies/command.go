package addbookcopies

const commandType = "AddBookCopies"

// Command represents the intent to add copies of a book to the inventory.
// ISBN and Title are only used when the book does not exist yet.
type Command struct {
	BookID string
	ISBN   string
	Title  string
	Copies int
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID, isbn, title string, copies int) Command {
	return Command{
		BookID: bookID,
		ISBN:   isbn,
		Title:  title,
		Copies: copies,
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return commandType
}
