package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/devconnect-api/internal/models"
)

// Memory is an in-memory stand-in for the Mongo stores. It backs the
// handler tests so they can run without a Mongo instance. Users(),
// Profiles() and Posts() expose the three store interfaces over the
// same shared state.
type Memory struct {
	mu       sync.Mutex
	users    map[primitive.ObjectID]models.User
	profiles map[primitive.ObjectID]models.Profile // keyed by owning user id
	posts    map[primitive.ObjectID]models.Post
	order    []primitive.ObjectID // post insertion order
}

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[primitive.ObjectID]models.User),
		profiles: make(map[primitive.ObjectID]models.Profile),
		posts:    make(map[primitive.ObjectID]models.Post),
	}
}

func (m *Memory) Users() UserStore       { return memoryUsers{m} }
func (m *Memory) Profiles() ProfileStore { return memoryProfiles{m} }
func (m *Memory) Posts() PostStore       { return memoryPosts{m} }

// UserCount reports how many users are stored; used by tests checking
// that duplicate registration does not create a second record.
func (m *Memory) UserCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

type memoryUsers struct{ m *Memory }

func (s memoryUsers) Create(ctx context.Context, user *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if u.Email == user.Email {
			return ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.m.users[user.ID] = *user
	return nil
}

func (s memoryUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s memoryUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s memoryUsers) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.m.users, id)
	return nil
}

type memoryProfiles struct{ m *Memory }

func (s memoryProfiles) Upsert(ctx context.Context, userID primitive.ObjectID, upd ProfileUpdate) (*models.Profile, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.profiles[userID]
	if !ok {
		p = models.Profile{
			ID:         primitive.NewObjectID(),
			UserID:     userID,
			Experience: []models.Experience{},
			Education:  []models.Education{},
		}
	}
	if upd.Company != "" {
		p.Company = upd.Company
	}
	if upd.Website != "" {
		p.Website = upd.Website
	}
	if upd.Location != "" {
		p.Location = upd.Location
	}
	if upd.Status != "" {
		p.Status = upd.Status
	}
	if upd.Bio != "" {
		p.Bio = upd.Bio
	}
	if upd.Skills != nil {
		p.Skills = upd.Skills
	}
	if upd.GithubUsername != "" {
		p.GithubUsername = upd.GithubUsername
	}
	if upd.Youtube != "" {
		p.Social.Youtube = upd.Youtube
	}
	if upd.Twitter != "" {
		p.Social.Twitter = upd.Twitter
	}
	if upd.Facebook != "" {
		p.Social.Facebook = upd.Facebook
	}
	if upd.Linkedin != "" {
		p.Social.Linkedin = upd.Linkedin
	}
	if upd.Instagram != "" {
		p.Social.Instagram = upd.Instagram
	}
	s.m.profiles[userID] = p
	out := p
	return &out, nil
}

// view joins the owner's display data, mirroring the Mongo $lookup.
func (s memoryProfiles) view(p models.Profile) models.ProfileView {
	v := models.ProfileView{Profile: p}
	if u, ok := s.m.users[p.UserID]; ok {
		v.User = models.UserSummary{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
	}
	return v
}

func (s memoryProfiles) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.ProfileView, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	v := s.view(p)
	return &v, nil
}

func (s memoryProfiles) FindAll(ctx context.Context) ([]models.ProfileView, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	views := make([]models.ProfileView, 0, len(s.m.profiles))
	for _, p := range s.m.profiles {
		views = append(views, s.view(p))
	}
	return views, nil
}

func (s memoryProfiles) Delete(ctx context.Context, userID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.profiles, userID)
	return nil
}

func (s memoryProfiles) AddExperience(ctx context.Context, userID primitive.ObjectID, exp models.Experience) (*models.Profile, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	exp.ID = primitive.NewObjectID()
	p.Experience = append([]models.Experience{exp}, p.Experience...)
	s.m.profiles[userID] = p
	out := p
	return &out, nil
}

func (s memoryProfiles) RemoveExperience(ctx context.Context, userID, expID primitive.ObjectID) (*models.Profile, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	for i, e := range p.Experience {
		if e.ID == expID {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			s.m.profiles[userID] = p
			out := p
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s memoryProfiles) AddEducation(ctx context.Context, userID primitive.ObjectID, edu models.Education) (*models.Profile, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	edu.ID = primitive.NewObjectID()
	p.Education = append([]models.Education{edu}, p.Education...)
	s.m.profiles[userID] = p
	out := p
	return &out, nil
}

func (s memoryProfiles) RemoveEducation(ctx context.Context, userID, eduID primitive.ObjectID) (*models.Profile, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	for i, e := range p.Education {
		if e.ID == eduID {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			s.m.profiles[userID] = p
			out := p
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

type memoryPosts struct{ m *Memory }

func (s memoryPosts) Create(ctx context.Context, post *models.Post) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	s.m.posts[post.ID] = *post
	s.m.order = append(s.m.order, post.ID)
	return nil
}

func (s memoryPosts) FindAll(ctx context.Context) ([]models.Post, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	posts := make([]models.Post, 0, len(s.m.posts))
	for i := len(s.m.order) - 1; i >= 0; i-- {
		if p, ok := s.m.posts[s.m.order[i]]; ok {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (s memoryPosts) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s memoryPosts) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.posts[id]; !ok {
		return ErrNotFound
	}
	delete(s.m.posts, id)
	return nil
}

func (s memoryPosts) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for id, p := range s.m.posts {
		if p.UserID == userID {
			delete(s.m.posts, id)
		}
	}
	return nil
}

func (s memoryPosts) AddLike(ctx context.Context, postID, userID primitive.ObjectID) ([]models.Like, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.posts[postID]
	if !ok {
		return nil, ErrNotFound
	}
	for _, l := range p.Likes {
		if l.UserID == userID {
			return nil, ErrAlreadyLiked
		}
	}
	p.Likes = append([]models.Like{{UserID: userID}}, p.Likes...)
	s.m.posts[postID] = p
	return p.Likes, nil
}

func (s memoryPosts) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) ([]models.Like, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.posts[postID]
	if !ok {
		return nil, ErrNotFound
	}
	for i, l := range p.Likes {
		if l.UserID == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			s.m.posts[postID] = p
			return p.Likes, nil
		}
	}
	return nil, ErrNotLiked
}

func (s memoryPosts) AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) ([]models.Comment, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.posts[postID]
	if !ok {
		return nil, ErrNotFound
	}
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	p.Comments = append([]models.Comment{comment}, p.Comments...)
	s.m.posts[postID] = p
	return p.Comments, nil
}

func (s memoryPosts) RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) ([]models.Comment, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.posts[postID]
	if !ok {
		return nil, ErrNotFound
	}
	for i, c := range p.Comments {
		if c.ID == commentID {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			s.m.posts[postID] = p
			return p.Comments, nil
		}
	}
	return nil, ErrNotFound
}
