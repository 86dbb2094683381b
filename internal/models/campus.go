package models

// Room is one campus-map room. Polygon points are map coordinates in the
// order the map layer draws them.
type Room struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Type    string       `json:"type"`
	Subject string       `json:"subject,omitempty"`
	Polygon [][2]float64 `json:"polygon"`
}

type Club struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	MeetingDay  string `json:"meeting_day,omitempty"`
	Room        string `json:"room,omitempty"`
	Sponsor     string `json:"sponsor,omitempty"`
}

type TeacherResource struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Subject     string `json:"subject,omitempty"`
}

type ElectiveCourse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Grades      []string `json:"grades,omitempty"`
}

type ElectiveCategory struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Courses []ElectiveCourse `json:"courses"`
}
