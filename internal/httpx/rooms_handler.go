package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/SunitaSingh93/Albergo/internal/hotel"
	"github.com/SunitaSingh93/Albergo/internal/rooms"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type RoomsHandler struct {
	Rooms    *rooms.Service
	Users    hotel.UserDirectory
	Validate *validator.Validate
}

type RoomReq struct {
	RoomNumber string `json:"room_number" validate:"required"`
	Occupancy  string `json:"occupancy" validate:"required"`
	Category   string `json:"category" validate:"required"`
	PriceCents int64  `json:"price_cents" validate:"required,gt=0"`
	ImagePath  string `json:"image_path"`
}

type UpdateRoomReq struct {
	Occupancy  string `json:"occupancy"`
	Category   string `json:"category"`
	PriceCents int64  `json:"price_cents" validate:"omitempty,gt=0"`
	ImagePath  string `json:"image_path"`
}

type RoomResp struct {
	ID         string           `json:"id"`
	RoomNumber string           `json:"room_number"`
	Occupancy  string           `json:"occupancy"`
	Category   hotel.Category   `json:"category"`
	PriceCents int64            `json:"price_cents"`
	ImagePath  string           `json:"image_path,omitempty"`
	Status     hotel.RoomStatus `json:"status"`
}

type UserResp struct {
	ID        string     `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Gender    string     `json:"gender"`
	Role      hotel.Role `json:"role"`
}

func roomResp(r *hotel.Room) RoomResp {
	return RoomResp{
		ID:         r.ID,
		RoomNumber: r.RoomNumber,
		Occupancy:  r.Occupancy,
		Category:   r.Category,
		PriceCents: r.PriceCents,
		ImagePath:  r.ImagePath,
		Status:     r.Status,
	}
}

func roomResps(list []hotel.Room) []RoomResp {
	out := make([]RoomResp, 0, len(list))
	for i := range list {
		out = append(out, roomResp(&list[i]))
	}
	return out
}

func (h *RoomsHandler) Register(r *chi.Mux) {
	r.Post("/rooms", h.addRoom)
	r.Get("/rooms", h.listRooms)
	r.Get("/rooms/{id}", h.getRoom)
	r.Put("/rooms/{id}", h.updateRoom)
	r.Delete("/rooms/{id}", h.deleteRoom)
	r.Get("/rooms/number/{no}", h.getRoomByNumber)
	r.Delete("/rooms/number/{no}", h.deleteRoomByNumber)
	r.Get("/rooms/category/{category}", h.roomsByCategory)
	r.Get("/users/{id}", h.getUser)
}

func (h *RoomsHandler) addRoom(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[RoomReq](r, h.Validate)
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.AddRoom(ctx, rooms.AddInput{
		RoomNumber: req.RoomNumber,
		Occupancy:  req.Occupancy,
		Category:   req.Category,
		PriceCents: req.PriceCents,
		ImagePath:  req.ImagePath,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, roomResp(room))
}

func (h *RoomsHandler) updateRoom(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[UpdateRoomReq](r, h.Validate)
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.UpdateRoom(ctx, chi.URLParam(r, "id"), rooms.UpdateInput{
		Occupancy:  req.Occupancy,
		Category:   req.Category,
		PriceCents: req.PriceCents,
		ImagePath:  req.ImagePath,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roomResp(room))
}

func (h *RoomsHandler) listRooms(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Rooms.ListRooms(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roomResps(list))
}

func (h *RoomsHandler) getRoom(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	room, err := h.Rooms.RoomByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roomResp(room))
}

func (h *RoomsHandler) getRoomByNumber(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	room, err := h.Rooms.RoomByNumber(ctx, chi.URLParam(r, "no"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roomResp(room))
}

func (h *RoomsHandler) roomsByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Rooms.RoomsByCategory(ctx, chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roomResps(list))
}

func (h *RoomsHandler) deleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.DeleteRoom(ctx, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "room deleted"})
}

func (h *RoomsHandler) deleteRoomByNumber(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.DeleteRoomByNumber(ctx, chi.URLParam(r, "no")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "room deleted"})
}

func (h *RoomsHandler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	u, err := h.Users.UserByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UserResp{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Gender:    u.Gender,
		Role:      u.Role,
	})
}
