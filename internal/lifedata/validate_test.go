package lifedata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Sample(t *testing.T) {
	ds := Dataset{Posts: samplePosts(), Locations: sampleLocations(), Activities: sampleWeek()}

	assert.NoError(t, Validate(ds))
}

func TestValidate_Empty(t *testing.T) {
	assert.NoError(t, Validate(Dataset{}))
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		ds   Dataset
		want string
	}{
		{
			name: "unknown platform",
			ds:   Dataset{Posts: []SocialPost{{Platform: "myspace", Author: Author{Name: "a"}}}},
			want: "posts[0].platform must be one of",
		},
		{
			name: "missing author",
			ds:   Dataset{Posts: []SocialPost{{Platform: Email}}},
			want: "posts[0].author.name is required",
		},
		{
			name: "negative likes",
			ds: Dataset{Posts: []SocialPost{{
				Platform: Email, Author: Author{Name: "a"}, Metrics: &Engagement{Likes: -1},
			}}},
			want: "posts[0].metrics.likes must be at least 0",
		},
		{
			name: "score out of range",
			ds: Dataset{Locations: []LocationVisit{{
				Name: "Park", Type: Park, SentimentScore: score(1.5),
			}}},
			want: "locations[0].sentimentscore must be at most 1",
		},
		{
			name: "bad latitude",
			ds: Dataset{Locations: []LocationVisit{{
				Name: "Pole", Type: Park, Coordinates: Coordinates{Lat: 91},
			}}},
			want: "locations[0].coordinates.lat must be a valid latitude",
		},
		{
			name: "missing date",
			ds:   Dataset{Activities: []ActivityDay{{Steps: 10}}},
			want: "activities[0].date is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.ds)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDataset)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
