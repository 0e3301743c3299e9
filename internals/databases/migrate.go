package database

import (
	"log"

	"gorm.io/gorm"

	adminModel "campussphere_backend/internals/features/admin/model"
	alumniModel "campussphere_backend/internals/features/alumni/model"
	assistantModel "campussphere_backend/internals/features/assistant/model"
	clubModel "campussphere_backend/internals/features/clubs/model"
	communityModel "campussphere_backend/internals/features/community/model"
	eventModel "campussphere_backend/internals/features/events/model"
	facultyModel "campussphere_backend/internals/features/faculty/model"
	resourceModel "campussphere_backend/internals/features/resources/model"
	transportModel "campussphere_backend/internals/features/transport/model"
	authModel "campussphere_backend/internals/features/users/auth/model"
	"campussphere_backend/internals/features/users/sessions"
	userModel "campussphere_backend/internals/features/users/user/model"
)

// Index parsial yang menopang invariant "maksimal satu request pending"
// per pasangan requester/target. Cek aplikasi saja tidak cukup (check-then-act),
// jadi constraint hidup di storage. Sintaks ini jalan di Postgres dan SQLite.
var pendingIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_club_tag_requests_pending
	   ON club_tag_requests (user_id, club_id) WHERE status = 'pending'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_alumni_contact_requests_pending
	   ON alumni_contact_requests (student_id, alumni_id) WHERE status = 'pending'`,
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&authModel.TempUserModel{},
		&authModel.PasswordResetTokenModel{},
		&sessions.SessionModel{},
		&transportModel.BusModel{},
		&transportModel.BusStopModel{},
		&transportModel.DriverModel{},
		&transportModel.BusManagerModel{},
		&clubModel.ClubModel{},
		&clubModel.ClubMembershipModel{},
		&clubModel.ClubTagRequestModel{},
		&alumniModel.AlumniModel{},
		&alumniModel.AlumniContactRequestModel{},
		&alumniModel.AlumniChatModel{},
		&eventModel.EventModel{},
		&eventModel.EventParticipationModel{},
		&communityModel.CommunityPostModel{},
		&communityModel.PostLikeModel{},
		&facultyModel.FacultyModel{},
		&facultyModel.EducationModel{},
		&facultyModel.TimetableModel{},
		&adminModel.AdminModel{},
		&assistantModel.ChatHistoryModel{},
		&assistantModel.UserPreferencesModel{},
		&assistantModel.PracticeQuestionModel{},
		&resourceModel.AcademicResourceModel{},
	); err != nil {
		return err
	}

	for _, stmt := range pendingIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	log.Println("✅ Migrasi schema selesai.")
	return nil
}
