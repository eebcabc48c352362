package models

// NextEmployeeID allocates an employee id. It is count+1 on a document that
// never saw a delete, and it never returns an id that was handed out before.
func (s *Snapshot) NextEmployeeID() int64 {
	next := int64(len(s.Employees))
	for _, e := range s.Employees {
		next = max(next, e.ID)
	}
	next = max(next, s.Sequences.Employees) + 1

	s.Sequences.Employees = next

	return next
}

// NextMessageID allocates a message id the same way as NextEmployeeID.
func (s *Snapshot) NextMessageID() int64 {
	next := int64(len(s.Messages))
	for _, m := range s.Messages {
		next = max(next, m.ID)
	}
	next = max(next, s.Sequences.Messages) + 1

	s.Sequences.Messages = next

	return next
}

func (s *Snapshot) NextManagerID() int64 {
	next := int64(len(s.Managers))
	for _, m := range s.Managers {
		next = max(next, m.ID)
	}

	return next + 1
}

func (s *Snapshot) NextAdminID() int64 {
	next := int64(len(s.Admins))
	for _, a := range s.Admins {
		next = max(next, a.ID)
	}

	return next + 1
}

// UserByEmail returns a pointer into s.Users, or nil.
func (s *Snapshot) UserByEmail(email string) *User {
	for i := range s.Users {
		if s.Users[i].Email == email {
			return &s.Users[i]
		}
	}

	return nil
}
