package seeder

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"quicksync/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Seeder populates a fresh database with the sample project catalog
// and a set of demo participants. Intended for development only; every
// insert is idempotent or skipped when the row already exists.
type Seeder struct {
	users    repository.UserRepository
	projects repository.ProjectRepository
	logger   *log.Logger
}

func New(users repository.UserRepository, projects repository.ProjectRepository, logger *log.Logger) *Seeder {
	if logger == nil {
		logger = log.Default()
	}
	return &Seeder{users: users, projects: projects, logger: logger}
}

func (s *Seeder) Run(ctx context.Context, participantCount int) error {
	if err := s.seedProjects(ctx); err != nil {
		return fmt.Errorf("seed projects: %w", err)
	}
	if err := s.seedParticipants(ctx, participantCount); err != nil {
		return fmt.Errorf("seed participants: %w", err)
	}
	return nil
}

var sampleProjects = []repository.ProjectSuggestion{
	{
		Title:             "Smart Home Dashboard",
		Description:       "Build a web dashboard to control IoT devices with real-time data visualization.",
		RequiredSkills:    []string{"React", "Node.js", "IoT", "WebSocket"},
		DifficultyLevel:   "intermediate",
		EstimatedDuration: "3-4 days",
		TechStack:         []string{"React", "Express.js", "Socket.io", "MongoDB"},
	},
	{
		Title:             "AI-Powered Recipe Finder",
		Description:       "Create an app that suggests recipes based on available ingredients using ML.",
		RequiredSkills:    []string{"Python", "Machine Learning", "Flask", "API Development"},
		DifficultyLevel:   "advanced",
		EstimatedDuration: "4-5 days",
		TechStack:         []string{"Python", "Flask", "TensorFlow", "SQLite"},
	},
	{
		Title:             "Collaborative Code Editor",
		Description:       "Build a real-time collaborative code editor with syntax highlighting.",
		RequiredSkills:    []string{"JavaScript", "WebSocket", "CodeMirror", "Backend"},
		DifficultyLevel:   "advanced",
		EstimatedDuration: "4-6 days",
		TechStack:         []string{"Vue.js", "Socket.io", "CodeMirror", "Redis"},
	},
	{
		Title:             "Personal Finance Tracker",
		Description:       "Create a mobile app to track expenses and visualize spending patterns.",
		RequiredSkills:    []string{"React Native", "Mobile Development", "Charts", "Database"},
		DifficultyLevel:   "intermediate",
		EstimatedDuration: "3-4 days",
		TechStack:         []string{"React Native", "Expo", "Chart.js", "Firebase"},
	},
	{
		Title:             "Social Media Analytics Tool",
		Description:       "Build a tool to analyze social media engagement and generate insights.",
		RequiredSkills:    []string{"Data Analysis", "API Integration", "Visualization", "Python"},
		DifficultyLevel:   "intermediate",
		EstimatedDuration: "2-3 days",
		TechStack:         []string{"Python", "Pandas", "Matplotlib", "Twitter API"},
	},
}

func (s *Seeder) seedProjects(ctx context.Context) error {
	created := 0
	for _, p := range sampleProjects {
		p.ID = uuid.New()
		ok, err := s.projects.CreateIfAbsent(ctx, p)
		if err != nil {
			return err
		}
		if ok {
			created++
		}
	}
	s.logger.Printf("seeded projects | created=%d total=%d", created, len(sampleProjects))
	return nil
}

var (
	sampleSkills = []string{
		"JavaScript", "Python", "React", "Node.js", "Django", "Flask",
		"TypeScript", "Vue.js", "Go", "Rust", "SQL", "MongoDB",
		"PostgreSQL", "Redis", "Docker", "Kubernetes", "AWS",
		"Machine Learning", "Data Science", "TensorFlow",
		"UI/UX Design", "Figma", "Mobile Development", "React Native",
		"Flutter", "Testing", "DevOps", "Project Management",
	}
	sampleInterests = []string{
		"Web Development", "Mobile Apps", "Game Development", "AI/ML",
		"Data Science", "Blockchain", "IoT", "Cybersecurity",
		"Cloud Computing", "Open Source", "Startups", "Fintech",
		"Healthtech", "Edtech", "Social Impact", "API Development",
		"AR/VR", "Computer Vision", "NLP", "Product Design",
	}
	sampleEventTags = []string{
		"Hackathon", "GameDev", "AI Challenge", "Web3", "Mobile Dev",
		"Social Impact", "Fintech", "Climate Tech", "Open Source",
		"Data Science", "Code for Good",
	}
	sampleFirstNames = []string{
		"Alex", "Sam", "Jordan", "Taylor", "Casey", "Riley", "Morgan",
		"Avery", "Quinn", "Sage", "River", "Rowan", "Luna", "Kai",
		"Nico", "Robin", "Ava", "Liam", "Emma", "Noah", "Olivia", "Mia",
	}
	sampleLastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia",
		"Miller", "Davis", "Rodriguez", "Martinez", "Wilson",
		"Anderson", "Thomas", "Taylor", "Moore", "Lee", "Clark",
	}
	sampleDays  = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	sampleSlots = []string{"morning", "afternoon", "evening", "night"}
)

const seedPassword = "quicksync-demo"

func (s *Seeder) seedParticipants(ctx context.Context, count int) error {
	if count <= 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	created := 0
	for i := 0; i < count; i++ {
		first := sampleFirstNames[rand.Intn(len(sampleFirstNames))]
		last := sampleLastNames[rand.Intn(len(sampleLastNames))]
		email := fmt.Sprintf("%s.%s%d@quicksync.dev", strings.ToLower(first), strings.ToLower(last), i)

		exists, err := s.users.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		u := repository.User{
			ID:           uuid.New(),
			Email:        email,
			PasswordHash: string(hash),
			FullName:     first + " " + last,
			Bio:          fmt.Sprintf("%s is here for the hackathon and looking for a team.", first),
			Skills:       pick(sampleSkills, 3+rand.Intn(4)),
			Interests:    pick(sampleInterests, 2+rand.Intn(4)),
			Availability: randomAvailability(),
			EventTags:    pick(sampleEventTags, 1+rand.Intn(2)),
		}
		if err := s.users.Create(ctx, u); err != nil {
			return err
		}
		created++
	}
	s.logger.Printf("seeded participants | created=%d requested=%d password=%q", created, count, seedPassword)
	return nil
}

func pick(from []string, n int) []string {
	idx := rand.Perm(len(from))
	if n > len(from) {
		n = len(from)
	}
	out := make([]string, 0, n)
	for _, i := range idx[:n] {
		out = append(out, from[i])
	}
	return out
}

func randomAvailability() map[string][]string {
	out := make(map[string][]string)
	for _, day := range pick(sampleDays, 2+rand.Intn(4)) {
		out[day] = pick(sampleSlots, 1+rand.Intn(3))
	}
	return out
}
