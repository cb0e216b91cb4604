package catalog

// Overview copy shared by both front ends.
const (
	Headline = "Learn PCB Design Like a Pro"
	Tagline  = "TraceTutor is your interactive guide to mastering printed circuit board design. " +
		"From schematics to manufacturing, learn with real projects and AI-powered feedback."
)

// Default returns a fresh copy of the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		Projects:      cloneProjects(projects),
		LearningPaths: clonePaths(learningPaths),
		Plans:         clonePlans(plans),
		Features:      append([]Feature(nil), features...),
	}
}

var projects = []Project{
	{
		ID:          1,
		Title:       "LED Blinker Circuit",
		Difficulty:  "Beginner",
		Description: "Learn basic PCB layout with a simple LED blinker using a 555 timer",
		Duration:    "30 min",
		Skills:      []string{"Schematic Design", "Basic Routing", "Component Placement"},
		Tags:        []string{"led", "timer", "555", "beginner", "basic", "blinker"},
		Icon:        "💡",
	},
	{
		ID:          2,
		Title:       "Arduino Shield",
		Difficulty:  "Intermediate",
		Description: "Design a custom Arduino shield with sensors and connectors",
		Duration:    "2 hours",
		Skills:      []string{"Multi-layer Design", "Connector Design", "Power Distribution"},
		Tags:        []string{"arduino", "shield", "sensors", "connectors", "microcontroller"},
		Icon:        "🔧",
	},
	{
		ID:          3,
		Title:       "Audio Amplifier",
		Difficulty:  "Advanced",
		Description: "Create a high-quality audio amplifier with proper ground planes",
		Duration:    "4 hours",
		Skills:      []string{"Analog Design", "EMI Considerations", "Thermal Management"},
		Tags:        []string{"audio", "amplifier", "analog", "ground planes", "emi", "thermal"},
		Icon:        "🎵",
	},
	{
		ID:          4,
		Title:       "Power Supply Module",
		Difficulty:  "Intermediate",
		Description: "Design a switching power supply with proper isolation and filtering",
		Duration:    "3 hours",
		Skills:      []string{"Power Electronics", "Isolation Design", "Noise Filtering"},
		Tags:        []string{"power", "supply", "switching", "isolation", "filtering"},
		Icon:        "⚡",
	},
	{
		ID:          5,
		Title:       "IoT Sensor Board",
		Difficulty:  "Intermediate",
		Description: "Create a wireless sensor board with WiFi connectivity and low power design",
		Duration:    "2.5 hours",
		Skills:      []string{"Wireless Design", "Low Power", "Sensor Integration"},
		Tags:        []string{"iot", "sensor", "wifi", "wireless", "low power", "esp32"},
		Icon:        "📡",
	},
	{
		ID:          6,
		Title:       "Motor Controller",
		Difficulty:  "Advanced",
		Description: "Design a high-current motor controller with proper heat dissipation",
		Duration:    "5 hours",
		Skills:      []string{"High Current Design", "Thermal Management", "Motor Control"},
		Tags:        []string{"motor", "controller", "high current", "thermal", "mosfet"},
		Icon:        "🏎️",
	},
}

var learningPaths = []LearningPath{
	{
		ID:          1,
		Title:       "Complete Beginner to PCB Designer",
		Description: "Start from zero and build your way up to designing complex PCBs",
		Duration:    "8-12 weeks",
		Difficulty:  "Beginner to Advanced",
		ProjectIDs:  []int{1, 2, 3},
		Milestones: []string{
			"Understand basic electronics and schematics",
			"Learn PCB layout fundamentals",
			"Master component placement and routing",
			"Design your first complete project",
		},
		Skills: []string{"Schematic Design", "PCB Layout", "Component Selection", "Manufacturing Prep"},
		Icon:   "🚀",
	},
	{
		ID:          2,
		Title:       "Power Electronics Specialist",
		Description: "Focus on power supply design and high-current applications",
		Duration:    "6-8 weeks",
		Difficulty:  "Intermediate to Advanced",
		ProjectIDs:  []int{4, 6, 3},
		Milestones: []string{
			"Design switching power supplies",
			"Master thermal management",
			"Handle high-current routing",
			"Implement safety and isolation",
		},
		Skills: []string{"Power Electronics", "Thermal Design", "High Current", "Safety Standards"},
		Icon:   "⚡",
	},
	{
		ID:          3,
		Title:       "IoT and Wireless Designer",
		Description: "Specialize in connected devices and wireless communication",
		Duration:    "4-6 weeks",
		Difficulty:  "Intermediate",
		ProjectIDs:  []int{5, 2, 1},
		Milestones: []string{
			"Design for wireless communication",
			"Optimize for low power consumption",
			"Integrate sensors and microcontrollers",
			"Handle EMI and antenna design",
		},
		Skills: []string{"Wireless Design", "Low Power", "Sensor Integration", "EMI Management"},
		Icon:   "📶",
	},
}

var plans = []Plan{
	{
		Name:         "Basic",
		MonthlyPrice: 0,
		Features: []string{
			"Access to basic courses",
			"3 starter projects",
			"Community forum access",
			"Limited AI tutor interactions",
		},
		CallToAction: "Get Started Free",
	},
	{
		Name:         "Pro",
		MonthlyPrice: 29,
		Features: []string{
			"All courses and projects",
			"Unlimited AI tutor access",
			"Design review and feedback",
			"Priority community support",
			"Certificate upon completion",
		},
		CallToAction: "Start Pro Plan",
		Highlighted:  true,
	},
	{
		Name:         "Expert",
		MonthlyPrice: 99,
		Features: []string{
			"Everything in Pro",
			"1-on-1 expert mentorship",
			"Custom project guidance",
			"Industry connections",
			"Job placement assistance",
		},
		CallToAction: "Contact Sales",
	},
}

var features = []Feature{
	{"Guided Learning", "Step by step tutorials that take you from beginner to advanced PCB designer with interactive challenges."},
	{"Tool Agnostic", "Learn core principles that work with KiCad, Altium, Fusion 360, and other popular PCB design tools."},
	{"Real Time Feedback", "Get instant feedback on your designs with AI-powered analysis for errors and improvements."},
	{"Certifications", "Earn badges and certificates as you complete modules and master PCB design skills."},
	{"Community", "Join thousands of learners, share projects, and get help from experienced designers."},
	{"Real Projects", "Work on practical projects from LED blinkers to complex microcontroller systems."},
}

func cloneProjects(in []Project) []Project {
	out := make([]Project, len(in))
	for i, p := range in {
		p.Skills = append([]string(nil), p.Skills...)
		p.Tags = append([]string(nil), p.Tags...)
		out[i] = p
	}
	return out
}

func clonePaths(in []LearningPath) []LearningPath {
	out := make([]LearningPath, len(in))
	for i, lp := range in {
		lp.ProjectIDs = append([]int(nil), lp.ProjectIDs...)
		lp.Milestones = append([]string(nil), lp.Milestones...)
		lp.Skills = append([]string(nil), lp.Skills...)
		out[i] = lp
	}
	return out
}

func clonePlans(in []Plan) []Plan {
	out := make([]Plan, len(in))
	for i, p := range in {
		p.Features = append([]string(nil), p.Features...)
		out[i] = p
	}
	return out
}
