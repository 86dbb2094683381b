package repository

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/models"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/storage"
)

const (
	roomsKey     = "campus_rooms"
	clubsKey     = "clubs"
	resourcesKey = "teacher_resources"
	electivesKey = "electives"
)

// CampusRepository serves the seed catalogs until a teacher overwrites a
// collection, after which the stored override is that instance's only truth.
type CampusRepository struct {
	store storage.Store
	log   *zap.Logger
	mu    sync.Mutex
}

func NewCampusRepository(store storage.Store, log *zap.Logger) *CampusRepository {
	return &CampusRepository{store: store, log: log}
}

// Rooms returns the stored override when present, else the seed catalog.
// Overrides written by the pre-polygon release stored a flat room-id to name
// map; those are upgraded in place on first read.
func (r *CampusRepository) Rooms() []models.Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, ok := r.store.Read(roomsKey)
	if !ok {
		return seedRooms()
	}

	var rooms []models.Room
	if err := json.Unmarshal(raw, &rooms); err == nil {
		return rooms
	}

	var legacy map[string]string
	if err := json.Unmarshal(raw, &legacy); err != nil {
		r.log.Warn("discarding unreadable room override", zap.Error(err))
		return seedRooms()
	}

	rooms = seedRooms()
	for i := range rooms {
		if name, ok := legacy[rooms[i].ID]; ok && name != "" {
			rooms[i].Name = name
		}
	}
	storage.Save(r.log, r.store, roomsKey, rooms)
	return rooms
}

// SetRooms replaces the room collection wholesale.
func (r *CampusRepository) SetRooms(rooms []models.Room) {
	r.mu.Lock()
	defer r.mu.Unlock()
	storage.Save(r.log, r.store, roomsKey, rooms)
}

func (r *CampusRepository) Clubs() []models.Club {
	return storage.Load(r.log, r.store, clubsKey, seedClubs)
}

func (r *CampusRepository) SetClubs(clubs []models.Club) {
	r.mu.Lock()
	defer r.mu.Unlock()
	storage.Save(r.log, r.store, clubsKey, clubs)
}

func (r *CampusRepository) Resources() []models.TeacherResource {
	return storage.Load(r.log, r.store, resourcesKey, seedResources)
}

func (r *CampusRepository) SetResources(resources []models.TeacherResource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	storage.Save(r.log, r.store, resourcesKey, resources)
}

func (r *CampusRepository) Electives() []models.ElectiveCategory {
	return storage.Load(r.log, r.store, electivesKey, seedElectives)
}

func (r *CampusRepository) SetElectives(electives []models.ElectiveCategory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	storage.Save(r.log, r.store, electivesKey, electives)
}
