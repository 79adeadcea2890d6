package lifedata

import "github.com/TobiSchelling/lifelens/internal/sentiment"

func score(v float64) *float64 { return &v }

func samplePosts() []SocialPost {
	return []SocialPost{
		{
			ID:        "1",
			Platform:  Twitter,
			Author:    Author{Name: "John Doe", Handle: "johndoe"},
			Content:   "Just finished a great workout at the gym! Feeling energized and ready for the day ahead. #fitness #wellness",
			Timestamp: "2 hours ago",
			Metrics:   &Engagement{Likes: 12, Comments: 3, Shares: 2},
			Sentiment: &PostSentiment{Score: 0.8, Label: sentiment.Positive},
		},
		{
			ID:        "2",
			Platform:  Facebook,
			Author:    Author{Name: "John Doe"},
			Content:   "Had a frustrating experience with customer service today. Still waiting for a resolution after 2 hours on the phone.",
			Timestamp: "5 hours ago",
			Metrics:   &Engagement{Likes: 5, Comments: 8},
			Sentiment: &PostSentiment{Score: -0.6, Label: sentiment.Negative},
		},
		{
			ID:        "3",
			Platform:  LinkedIn,
			Author:    Author{Name: "John Doe", Handle: "johndoe"},
			Content:   "Excited to announce that I'll be speaking at the upcoming tech conference next month! Looking forward to sharing insights on data privacy and analytics.",
			Timestamp: "Yesterday",
			Metrics:   &Engagement{Likes: 45, Comments: 7, Shares: 5},
			Sentiment: &PostSentiment{Score: 0.7, Label: sentiment.Positive},
			Link:      "https://example.com/conference",
		},
		{
			ID:        "4",
			Platform:  Email,
			Author:    Author{Name: "Project Team", Handle: "team@example.com"},
			Content:   "The quarterly report is now available for review. Please provide your feedback by the end of the week.",
			Timestamp: "Yesterday",
			Sentiment: &PostSentiment{Score: 0.1, Label: sentiment.Neutral},
		},
		{
			ID:        "5",
			Platform:  Instagram,
			Author:    Author{Name: "John Doe", Handle: "johndoe"},
			Content:   "Beautiful sunset at the beach today. The perfect end to a relaxing weekend! #sunset #weekend #beach",
			Timestamp: "2 days ago",
			Metrics:   &Engagement{Likes: 87, Comments: 12},
			Sentiment: &PostSentiment{Score: 0.9, Label: sentiment.Positive},
		},
	}
}

func sampleLocations() []LocationVisit {
	return []LocationVisit{
		{ID: "1", Name: "Morning Run at ASU Campus", Type: Park, Time: "6:15 AM", Duration: "45 minutes",
			Coordinates: Coordinates{Lat: 33.4242, Lng: -111.9281}, SentimentScore: score(0.8)},
		{ID: "2", Name: "Coffee at Dutch Bros", Type: Food, Time: "7:30 AM", Duration: "20 minutes",
			Coordinates: Coordinates{Lat: 33.4150, Lng: -111.9255}, SentimentScore: score(0.6)},
		{ID: "3", Name: "Computer Science Class", Type: School, Time: "9:00 AM", Duration: "1.5 hours",
			Coordinates: Coordinates{Lat: 33.4242, Lng: -111.9400}},
		{ID: "4", Name: "Lunch with Friends", Type: Food, Time: "12:30 PM", Duration: "1 hour",
			Coordinates: Coordinates{Lat: 33.4190, Lng: -111.9350}, SentimentScore: score(0.9)},
		{ID: "5", Name: "Apartment", Type: Home, Time: "1:45 PM",
			Coordinates: Coordinates{Lat: 33.4170, Lng: -111.9300}},
		{ID: "6", Name: "Study Session at Library", Type: School, Time: "2:00 PM", Duration: "3 hours",
			Coordinates: Coordinates{Lat: 33.4190, Lng: -111.9320}},
		{ID: "7", Name: "Apartment", Type: Home, Time: "9:00 PM",
			Coordinates: Coordinates{Lat: 33.4170, Lng: -111.9300}},
	}
}

func sampleWeek() []ActivityDay {
	steps := []int{8234, 10543, 7654, 9876, 11234, 12543, 9234}
	sleep := []float64{7.5, 6.8, 8.2, 7.1, 6.5, 8.5, 7.8}
	days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

	week := make([]ActivityDay, len(steps))
	for i := range steps {
		week[i] = ActivityDay{
			Date:          days[i],
			Steps:         steps[i],
			Calories:      2000 + i*100,
			Sleep:         sleep[i],
			ActiveMinutes: 30 + i*5,
		}
	}
	return week
}
