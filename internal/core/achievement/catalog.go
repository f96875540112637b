package achievement

// StarterID is the achievement a new user realistically earns first.
// Grid layouts pin it to the centre cell.
const StarterID = "first_habit"

// DefaultCatalog returns the production achievement table in declaration order.
// Prerequisites must be declared before their dependents only for readability;
// evaluation order comes from this slice.
func DefaultCatalog() []Definition {
	return []Definition{
		// ====== GETTING STARTED ======
		{ID: "first_habit", Name: "First Step", Description: "Create your first habit", Icon: "🌱", Rarity: RarityCommon, Category: CategoryGettingStarted, Condition: FirstAction{Action: ActionCreateHabit}},
		{ID: "first_completion", Name: "Done and Dusted", Description: "Complete a habit for the first time", Icon: "✅", Rarity: RarityCommon, Category: CategoryGettingStarted, Condition: FirstAction{Action: ActionCompleteHabit}, PrerequisiteIDs: []string{"first_habit"}},
		{ID: "first_customize", Name: "Make It Yours", Description: "Customize a habit's look", Icon: "🎨", Rarity: RarityCommon, Category: CategoryGettingStarted, Condition: FirstAction{Action: ActionCustomizeHabit}, PrerequisiteIDs: []string{"first_habit"}},
		{ID: "habits_3", Name: "Juggler", Description: "Track 3 habits at once", Icon: "🤹", Rarity: RarityCommon, Category: CategoryGettingStarted, Condition: TaskCount{Threshold: 3}, PrerequisiteIDs: []string{"first_habit"}},
		{ID: "habits_5", Name: "Routine Builder", Description: "Track 5 habits at once", Icon: "🧱", Rarity: RarityUncommon, Category: CategoryGettingStarted, Condition: TaskCount{Threshold: 5}, PrerequisiteIDs: []string{"habits_3"}},
		{ID: "habits_10", Name: "Life Architect", Description: "Track 10 habits at once", Icon: "🏛️", Rarity: RarityRare, Category: CategoryGettingStarted, Condition: TaskCount{Threshold: 10}, PrerequisiteIDs: []string{"habits_5"}},

		// ====== CONSISTENCY ======
		{ID: "streak_3", Name: "Warming Up", Description: "Reach a 3-day streak on any habit", Icon: "🔥", Rarity: RarityCommon, Category: CategoryConsistency, Condition: StreakDays{Threshold: 3}, PrerequisiteIDs: []string{"first_completion"}},
		{ID: "streak_7", Name: "Week Strong", Description: "Reach a 7-day streak on any habit", Icon: "📆", Rarity: RarityUncommon, Category: CategoryConsistency, Condition: StreakDays{Threshold: 7}, PrerequisiteIDs: []string{"streak_3"}},
		{ID: "streak_14", Name: "Fortnight Focus", Description: "Reach a 14-day streak on any habit", Icon: "💪", Rarity: RarityUncommon, Category: CategoryConsistency, Condition: StreakDays{Threshold: 14}, PrerequisiteIDs: []string{"streak_7"}},
		{ID: "streak_30", Name: "Monthly Master", Description: "Reach a 30-day streak on any habit", Icon: "🏆", Rarity: RarityRare, Category: CategoryConsistency, Condition: StreakDays{Threshold: 30}, PrerequisiteIDs: []string{"streak_14"}},
		{ID: "streak_66", Name: "Automatic", Description: "Reach a 66-day streak on any habit", Icon: "⚙️", Rarity: RarityEpic, Category: CategoryConsistency, Condition: StreakDays{Threshold: 66}, PrerequisiteIDs: []string{"streak_30"}},
		{ID: "streak_100", Name: "Centurion", Description: "Reach a 100-day streak on any habit", Icon: "💯", Rarity: RarityEpic, Category: CategoryConsistency, Condition: StreakDays{Threshold: 100}, PrerequisiteIDs: []string{"streak_66"}},
		{ID: "streak_365", Name: "Year of Iron", Description: "Reach a 365-day streak on any habit", Icon: "👑", Rarity: RarityLegendary, Category: CategoryConsistency, Condition: StreakDays{Threshold: 365}, PrerequisiteIDs: []string{"streak_100"}},
		{ID: "all_habits_3", Name: "Clean Sweep", Description: "Complete every habit 3 days in a row", Icon: "🧹", Rarity: RarityUncommon, Category: CategoryConsistency, Condition: AllHabitsStreak{Days: 3}, PrerequisiteIDs: []string{"habits_3"}},
		{ID: "perfect_week", Name: "Perfect Week", Description: "Complete every habit every day for a week", Icon: "⭐", Rarity: RarityRare, Category: CategoryConsistency, Condition: PerfectWeek{Weeks: 1}, PrerequisiteIDs: []string{"all_habits_3"}},
		{ID: "perfect_month", Name: "Perfect Month", Description: "Complete every habit every day for four weeks", Icon: "🌟", Rarity: RarityEpic, Category: CategoryConsistency, Condition: PerfectWeek{Weeks: 4}, PrerequisiteIDs: []string{"perfect_week"}},
		{ID: "comeback", Name: "Comeback Kid", Description: "Rebuild a 7-day streak after losing one of 7 days or more", Icon: "🔁", Rarity: RarityRare, Category: CategoryConsistency, Condition: StreakRecovery{MinLostStreak: 7, Threshold: 7}, PrerequisiteIDs: []string{"streak_7"}},
		{ID: "phoenix", Name: "Phoenix", Description: "Rebuild a 30-day streak after losing one of 30 days or more", Icon: "🐦‍🔥", Rarity: RarityEpic, Category: CategoryConsistency, Condition: StreakRecovery{MinLostStreak: 30, Threshold: 30}, PrerequisiteIDs: []string{"comeback"}, Hidden: true},

		// ====== DEDICATION ======
		{ID: "completions_10", Name: "Ten Down", Description: "Complete a single habit 10 times", Icon: "🔟", Rarity: RarityCommon, Category: CategoryDedication, Condition: TotalCompletions{Threshold: 10}, PrerequisiteIDs: []string{"first_completion"}},
		{ID: "completions_50", Name: "Half Century", Description: "Complete a single habit 50 times", Icon: "🎯", Rarity: RarityUncommon, Category: CategoryDedication, Condition: TotalCompletions{Threshold: 50}, PrerequisiteIDs: []string{"completions_10"}},
		{ID: "completions_100", Name: "Hundred Club", Description: "Complete a single habit 100 times", Icon: "🏅", Rarity: RarityRare, Category: CategoryDedication, Condition: TotalCompletions{Threshold: 100}, PrerequisiteIDs: []string{"completions_50"}},
		{ID: "completions_500", Name: "Devotee", Description: "Complete a single habit 500 times", Icon: "🙏", Rarity: RarityEpic, Category: CategoryDedication, Condition: TotalCompletions{Threshold: 500}, PrerequisiteIDs: []string{"completions_100"}},
		{ID: "total_100", Name: "Busy Bee", Description: "Log 100 completions across all habits", Icon: "🐝", Rarity: RarityUncommon, Category: CategoryDedication, Condition: TotalHabitsCompletions{Threshold: 100}, PrerequisiteIDs: []string{"first_completion"}},
		{ID: "total_1000", Name: "Thousand Strong", Description: "Log 1,000 completions across all habits", Icon: "🏔️", Rarity: RarityEpic, Category: CategoryDedication, Condition: TotalHabitsCompletions{Threshold: 1000}, PrerequisiteIDs: []string{"total_100"}},

		// ====== TIME OF DAY ======
		{ID: "early_bird", Name: "Early Bird", Description: "Complete a habit before 7:00 on 3 days in a row", Icon: "🐦", Rarity: RarityUncommon, Category: CategoryTimeOfDay, Condition: EarlyCompletion{Before: "07:00", Days: 3}, PrerequisiteIDs: []string{"first_completion"}},
		{ID: "dawn_patrol", Name: "Dawn Patrol", Description: "Complete a habit before 6:00 on 14 days in a row", Icon: "🌅", Rarity: RarityEpic, Category: CategoryTimeOfDay, Condition: EarlyCompletion{Before: "06:00", Days: 14}, PrerequisiteIDs: []string{"early_bird"}},
		{ID: "night_owl", Name: "Night Owl", Description: "Complete a habit after 22:00 on 3 days in a row", Icon: "🦉", Rarity: RarityUncommon, Category: CategoryTimeOfDay, Condition: EveningCompletion{After: "22:00", Days: 3}, PrerequisiteIDs: []string{"first_completion"}},
		{ID: "midnight_oil", Name: "Midnight Oil", Description: "Complete a habit after 23:00 on 14 days in a row", Icon: "🕯️", Rarity: RarityEpic, Category: CategoryTimeOfDay, Condition: EveningCompletion{After: "23:00", Days: 14}, PrerequisiteIDs: []string{"night_owl"}},
		{ID: "weekend_warrior", Name: "Weekend Warrior", Description: "Complete habits on Saturday and Sunday for 2 weekends running", Icon: "⚔️", Rarity: RarityUncommon, Category: CategoryTimeOfDay, Condition: WeekendStreak{Weekends: 2}, PrerequisiteIDs: []string{"first_completion"}},
		{ID: "weekend_legend", Name: "Weekend Legend", Description: "Complete habits on Saturday and Sunday for 8 weekends running", Icon: "🛡️", Rarity: RarityRare, Category: CategoryTimeOfDay, Condition: WeekendStreak{Weekends: 8}, PrerequisiteIDs: []string{"weekend_warrior"}},

		// ====== VARIETY ======
		{ID: "triple_play", Name: "Triple Play", Description: "Complete 3 different habits on the same day", Icon: "🎲", Rarity: RarityCommon, Category: CategoryVariety, Condition: MultiHabitSameDay{Habits: 3}, PrerequisiteIDs: []string{"habits_3"}},
		{ID: "high_five", Name: "High Five", Description: "Complete 5 different habits on the same day", Icon: "🖐️", Rarity: RarityUncommon, Category: CategoryVariety, Condition: MultiHabitSameDay{Habits: 5}, PrerequisiteIDs: []string{"triple_play"}},
		{ID: "balanced_week", Name: "Balanced Week", Description: "Complete 3 different habits every day for 7 days", Icon: "⚖️", Rarity: RarityRare, Category: CategoryVariety, Condition: MultiHabitStreak{Habits: 3, Days: 7}, PrerequisiteIDs: []string{"triple_play"}},
		{ID: "renaissance", Name: "Renaissance", Description: "Complete 5 different habits every day for 30 days", Icon: "🎭", Rarity: RarityLegendary, Category: CategoryVariety, Condition: MultiHabitStreak{Habits: 5, Days: 30}, PrerequisiteIDs: []string{"balanced_week", "high_five"}},

		// ====== SPECIAL ======
		{ID: "new_year", Name: "Fresh Start", Description: "Show up on New Year's Day", Icon: "🎆", Rarity: RarityRare, Category: CategorySpecial, Condition: DateSpecific{MonthDay: "01-01"}, PrerequisiteIDs: []string{"first_habit"}, Hidden: true},
		{ID: "leap_day", Name: "Leap of Faith", Description: "Show up on February 29th", Icon: "🐸", Rarity: RarityLegendary, Category: CategorySpecial, Condition: DateSpecific{MonthDay: "02-29"}, PrerequisiteIDs: []string{"first_habit"}, Hidden: true},
		{ID: "halloween", Name: "Spooky Streak", Description: "Show up on Halloween", Icon: "🎃", Rarity: RarityUncommon, Category: CategorySpecial, Condition: DateSpecific{MonthDay: "10-31"}, PrerequisiteIDs: []string{"first_habit"}, Hidden: true},
		{ID: "anniversary_1", Name: "One Year In", Description: "Keep tracking for a whole year", Icon: "🎂", Rarity: RarityRare, Category: CategorySpecial, Condition: AppAnniversary{Years: 1}, PrerequisiteIDs: []string{"first_habit"}},
		{ID: "anniversary_3", Name: "Old Hand", Description: "Keep tracking for three years", Icon: "🕰️", Rarity: RarityLegendary, Category: CategorySpecial, Condition: AppAnniversary{Years: 3}, PrerequisiteIDs: []string{"anniversary_1"}},

		// ====== MASTERY ======
		{ID: "iron_will", Name: "Iron Will", Description: "Hold a 100-day streak and a perfect month", Icon: "🗿", Rarity: RarityLegendary, Category: CategoryMastery, Condition: StreakDays{Threshold: 100}, PrerequisiteIDs: []string{"streak_100", "perfect_month"}},
		{ID: "grand_total", Name: "Ten Thousand Hours", Description: "Log 10,000 completions across all habits", Icon: "💎", Rarity: RarityLegendary, Category: CategoryMastery, Condition: TotalHabitsCompletions{Threshold: 10000}, PrerequisiteIDs: []string{"total_1000", "completions_500"}},
	}
}
