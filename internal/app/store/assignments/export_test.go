package assignmentstore

// SetReconcileHooks installs functions Reconcile calls after its mentor scan
// and after its student scan. Either may be nil.
func SetReconcileHooks(s *Store, afterMentorScan, afterStudentScan func()) {
	s.hooks = reconcileHooks{
		afterMentorScan:  afterMentorScan,
		afterStudentScan: afterStudentScan,
	}
}
