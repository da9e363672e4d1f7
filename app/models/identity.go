package models

// Identity is the explicit caller identity passed into every service call.
// It is built from validated JWT claims by the auth middleware; the core
// services never read ambient session state themselves.
type Identity struct {
	Role      Role   `json:"role"`
	UserID    string `json:"user_id"`
	TeacherID string `json:"teacher_id,omitempty"`
	StudentID string `json:"student_id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
}

func (id Identity) IsAdmin() bool   { return id.Role == RoleAdmin }
func (id Identity) IsTeacher() bool { return id.Role == RoleTeacher }
func (id Identity) IsStudent() bool { return id.Role == RoleStudent }
