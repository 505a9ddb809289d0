package domain

// FruitLevel identifies a fruit's size/type. Merging two fruits of the same
// level yields one fruit of the next level.
type FruitLevel int

// Fruit levels
const (
	FruitCherry     FruitLevel = 1
	FruitStrawberry FruitLevel = 2
	FruitGrape      FruitLevel = 3
	FruitOrange     FruitLevel = 4
	FruitPersimmon  FruitLevel = 5
	FruitApple      FruitLevel = 6
	FruitPear       FruitLevel = 7
	FruitPeach      FruitLevel = 8
	FruitPineapple  FruitLevel = 9
	FruitMelon      FruitLevel = 10

	MinFruitLevel = FruitCherry
	MaxFruitLevel = FruitMelon
)

var fruitNames = map[FruitLevel]string{
	FruitCherry:     "cherry",
	FruitStrawberry: "strawberry",
	FruitGrape:      "grape",
	FruitOrange:     "orange",
	FruitPersimmon:  "persimmon",
	FruitApple:      "apple",
	FruitPear:       "pear",
	FruitPeach:      "peach",
	FruitPineapple:  "pineapple",
	FruitMelon:      "melon",
}

// Valid reports whether the level is within 1..10
func (l FruitLevel) Valid() bool {
	return l >= MinFruitLevel && l <= MaxFruitLevel
}

// Name returns the internal fruit name, or "unknown"
func (l FruitLevel) Name() string {
	if name, ok := fruitNames[l]; ok {
		return name
	}
	return "unknown"
}

// Next returns the level a merge produces, capped at MaxFruitLevel
func (l FruitLevel) Next() FruitLevel {
	if l >= MaxFruitLevel {
		return MaxFruitLevel
	}
	return l + 1
}

// Reward returns the seeds earned when a merge produces a fruit of this level.
//
//	level <= 3   -> 0
//	level 4..5   -> level - 3
//	level 6..7   -> level - 2
//	level 8..10  -> level
func Reward(level FruitLevel) int64 {
	switch {
	case level < MinFruitLevel || level > MaxFruitLevel:
		return 0
	case level <= 3:
		return 0
	case level <= 5:
		return int64(level) - 3
	case level <= 7:
		return int64(level) - 2
	default:
		return int64(level)
	}
}

// MergeScore is the score awarded for producing a fruit of the given level
func MergeScore(level FruitLevel) int64 {
	return 10 * int64(level)
}

// Rarity is an ordinal quality tier
type Rarity int

// Rarity tiers
const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

var rarityNames = [...]string{"COMMON", "UNCOMMON", "RARE", "EPIC", "LEGENDARY"}

// rarityMultipliers are percentages applied to sale values
var rarityMultipliers = [...]int64{100, 150, 200, 300, 500}

// Valid reports whether r is a known tier
func (r Rarity) Valid() bool {
	return r >= RarityCommon && r <= RarityLegendary
}

func (r Rarity) String() string {
	if !r.Valid() {
		return "UNKNOWN"
	}
	return rarityNames[r]
}

// RarityMultiplier returns the value multiplier for a tier, in percent.
// Unknown tiers are treated as common.
func RarityMultiplier(r Rarity) int64 {
	if !r.Valid() {
		return rarityMultipliers[RarityCommon]
	}
	return rarityMultipliers[r]
}

// Rarity roll thresholds (inclusive upper bounds on a 1..100 roll)
const (
	RollThresholdCommon   = 50
	RollThresholdUncommon = 75
	RollThresholdRare     = 90
	RollThresholdEpic     = 98
	MaxRarityRoll         = 100
)

// RarityFromRoll buckets a 1..100 roll into a tier
func RarityFromRoll(roll int) Rarity {
	switch {
	case roll <= RollThresholdCommon:
		return RarityCommon
	case roll <= RollThresholdUncommon:
		return RarityUncommon
	case roll <= RollThresholdRare:
		return RarityRare
	case roll <= RollThresholdEpic:
		return RarityEpic
	default:
		return RarityLegendary
	}
}

// Weight thresholds, as a percentage over the nominal max weight of a type
const (
	WeightOverUncommonPct  = 20
	WeightOverRarePct      = 50
	WeightOverEpicPct      = 100
	WeightOverLegendaryPct = 200

	// NominalBaseWeight is the heaviest base weight a freshly planted fruit can roll
	NominalBaseWeight int64 = 500
)

// NominalMaxWeight is the heaviest a fruit of the given type is expected to be
// when built from ten fruits of the previous type: 500 * 10^(type-1).
func NominalMaxWeight(fruitType FruitLevel) int64 {
	if fruitType < MinFruitLevel {
		fruitType = MinFruitLevel
	}
	if fruitType > MaxFruitLevel {
		fruitType = MaxFruitLevel
	}
	w := NominalBaseWeight
	for l := MinFruitLevel; l < fruitType; l++ {
		w *= 10
	}
	return w
}

// RarityFromWeight grades a merged fruit by how far its weight exceeds the
// nominal max weight of its type.
func RarityFromWeight(fruitType FruitLevel, weight int64) Rarity {
	nominal := NominalMaxWeight(fruitType)
	if weight <= nominal {
		return RarityCommon
	}
	over := weight - nominal
	if over >= nominal*WeightOverLegendaryPct/100 {
		return RarityLegendary
	}
	overPct := over * 100 / nominal
	switch {
	case overPct < WeightOverUncommonPct:
		return RarityCommon
	case overPct < WeightOverRarePct:
		return RarityUncommon
	case overPct < WeightOverEpicPct:
		return RarityRare
	case overPct < WeightOverLegendaryPct:
		return RarityEpic
	default:
		return RarityLegendary
	}
}
