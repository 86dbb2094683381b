package repository

import "github.com/kennethtrancoding/my-first-day-sub000/internal/models"

// Seed catalogs ship with the binary. Seed functions return fresh slices so
// callers can mutate their copy without touching the defaults.

func seedRooms() []models.Room {
	return []models.Room{
		{ID: "room-101", Name: "Room 101", Type: "classroom", Subject: "Math", Polygon: [][2]float64{{12, 8}, {28, 8}, {28, 22}, {12, 22}}},
		{ID: "room-102", Name: "Room 102", Type: "classroom", Subject: "English", Polygon: [][2]float64{{30, 8}, {46, 8}, {46, 22}, {30, 22}}},
		{ID: "room-103", Name: "Room 103", Type: "classroom", Subject: "Science", Polygon: [][2]float64{{48, 8}, {64, 8}, {64, 22}, {48, 22}}},
		{ID: "room-201", Name: "Room 201", Type: "classroom", Subject: "History", Polygon: [][2]float64{{12, 26}, {28, 26}, {28, 40}, {12, 40}}},
		{ID: "makerspace", Name: "Makerspace", Type: "lab", Subject: "STEM", Polygon: [][2]float64{{48, 26}, {70, 26}, {70, 44}, {48, 44}}},
		{ID: "library", Name: "Library", Type: "common", Polygon: [][2]float64{{72, 8}, {96, 8}, {96, 30}, {72, 30}}},
		{ID: "gym", Name: "Gymnasium", Type: "common", Polygon: [][2]float64{{12, 46}, {44, 46}, {44, 72}, {12, 72}}},
		{ID: "cafeteria", Name: "Cafeteria", Type: "common", Polygon: [][2]float64{{48, 48}, {78, 48}, {78, 70}, {48, 70}}},
		{ID: "auditorium", Name: "Auditorium", Type: "common", Polygon: [][2]float64{{80, 34}, {104, 34}, {104, 58}, {80, 58}}},
		{ID: "front-office", Name: "Front Office", Type: "office", Polygon: [][2]float64{{2, 8}, {10, 8}, {10, 20}, {2, 20}}},
	}
}

func seedClubs() []models.Club {
	return []models.Club{
		{ID: "robotics-club", Name: "Robotics Club", Description: "Build and battle robots in the makerspace.", Category: "STEM", MeetingDay: "Tuesday", Room: "makerspace", Sponsor: "Mr. Okafor"},
		{ID: "art-club", Name: "Art Club", Description: "Painting, drawing, and seasonal mural projects.", Category: "Arts", MeetingDay: "Wednesday", Room: "room-102", Sponsor: "Ms. Delgado"},
		{ID: "chess-club", Name: "Chess Club", Description: "Casual games and ladder tournaments.", Category: "Games", MeetingDay: "Thursday", Room: "library", Sponsor: "Mr. Stein"},
		{ID: "drama-club", Name: "Drama Club", Description: "Two stage productions a year, cast and crew welcome.", Category: "Arts", MeetingDay: "Monday", Room: "auditorium", Sponsor: "Ms. Park"},
		{ID: "coding-club", Name: "Coding Club", Description: "Learn to program games and apps, no experience needed.", Category: "STEM", MeetingDay: "Friday", Room: "room-103", Sponsor: "Ms. Nguyen"},
		{ID: "track-club", Name: "Running Club", Description: "After-school runs and spring meet training.", Category: "Sports", MeetingDay: "Tuesday", Room: "gym", Sponsor: "Coach Alvarez"},
	}
}

func seedResources() []models.TeacherResource {
	return []models.TeacherResource{
		{ID: "handbook", Title: "Student Handbook", URL: "https://example.edu/docs/handbook.pdf", Description: "Policies, bell schedule, and dress code.", Subject: "General"},
		{ID: "library-catalog", Title: "Library Catalog", URL: "https://example.edu/library", Description: "Search and reserve books online.", Subject: "General"},
		{ID: "math-help", Title: "Math Help Center Hours", URL: "https://example.edu/math-help", Description: "Drop-in tutoring schedule.", Subject: "Math"},
		{ID: "science-fair", Title: "Science Fair Guide", URL: "https://example.edu/science-fair.pdf", Description: "Project rules and timeline.", Subject: "Science"},
	}
}

func seedElectives() []models.ElectiveCategory {
	return []models.ElectiveCategory{
		{
			ID:   "arts",
			Name: "Visual & Performing Arts",
			Courses: []models.ElectiveCourse{
				{ID: "band", Name: "Beginning Band", Description: "Instrument basics and ensemble playing.", Grades: []string{"6", "7", "8"}},
				{ID: "studio-art", Name: "Studio Art", Description: "Drawing, painting, and ceramics.", Grades: []string{"6", "7", "8"}},
				{ID: "stagecraft", Name: "Stagecraft", Description: "Set design and theater production.", Grades: []string{"7", "8"}},
			},
		},
		{
			ID:   "stem",
			Name: "STEM",
			Courses: []models.ElectiveCourse{
				{ID: "intro-robotics", Name: "Intro to Robotics", Description: "Design, build, and program robots.", Grades: []string{"7", "8"}},
				{ID: "computer-science", Name: "Computer Science Discoveries", Description: "Web pages, games, and data.", Grades: []string{"6", "7", "8"}},
			},
		},
		{
			ID:   "life-skills",
			Name: "Life Skills",
			Courses: []models.ElectiveCourse{
				{ID: "journalism", Name: "Journalism", Description: "Write and publish the school paper.", Grades: []string{"7", "8"}},
				{ID: "leadership", Name: "Student Leadership", Description: "Plan school events and service projects.", Grades: []string{"8"}},
			},
		},
	}
}
