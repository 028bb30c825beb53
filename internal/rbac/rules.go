package rbac

const (
	PermQuizCreate     = "quiz:create"
	PermQuizViewOwn    = "quiz:view-own"
	PermQuizDeleteOwn  = "quiz:delete-own"
	PermQuizExportOwn  = "quiz:export-own"
	PermQuizManageAny  = "quiz:manage-any"
	PermTeachersManage = "teachers:manage"
	PermActivityView   = "activity:view"
)

var RolePermissions = map[string][]string{
	"teacher": {
		PermQuizCreate,
		PermQuizViewOwn,
		PermQuizDeleteOwn,
		PermQuizExportOwn,
	},
	"admin": {
		"*", // everything
	},
}
