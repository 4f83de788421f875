package prahar

// Question is a quiz question as served by the backend.
type Question struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// OptionsPerQuestion is the fixed option count, lettered A-D.
const OptionsPerQuestion = 4

var questions = []Question{
	{ID: 1, Question: "Which activity do you enjoy most during your free time?",
		Options: []string{"Reading a book", "Outdoor adventures", "Creative pursuits", "Social gatherings"}},
	{ID: 2, Question: "What type of environment helps you feel most productive?",
		Options: []string{"Quiet and organized space", "Bustling and energetic atmosphere", "Natural surroundings", "Collaborative setting"}},
	{ID: 3, Question: "How do you typically approach challenges?",
		Options: []string{"Analyze methodically", "Take immediate action", "Seek advice from others", "Trust your intuition"}},
	{ID: 4, Question: "Which quality do you value most in relationships?",
		Options: []string{"Loyalty", "Honesty", "Understanding", "Growth"}},
	{ID: 5, Question: "What time of day do you feel most energetic?",
		Options: []string{"Early morning", "Mid-day", "Evening", "Late night"}},
	{ID: 6, Question: "How do you prefer to learn new information?",
		Options: []string{"Reading/visual materials", "Hands-on experience", "Listening to experts", "Group discussion"}},
	{ID: 7, Question: "Which element resonates with you most?",
		Options: []string{"Earth", "Water", "Air", "Fire"}},
	{ID: 8, Question: "How do you make important decisions?",
		Options: []string{"Logic and reason", "Emotional intuition", "Weighing pros and cons", "Seeking advice"}},
	{ID: 9, Question: "What do you value most in your life path?",
		Options: []string{"Security and stability", "Growth and challenges", "Balance and harmony", "Purpose and meaning"}},
	{ID: 10, Question: "How do others typically describe your personality?",
		Options: []string{"Calm and collected", "Energetic and passionate", "Thoughtful and analytical", "Adaptable and flexible"}},
}

// Questions returns a copy of the ten-question set.
func Questions() []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		opts := make([]string, len(q.Options))
		copy(opts, q.Options)
		out[i] = Question{ID: q.ID, Question: q.Question, Options: opts}
	}
	return out
}
